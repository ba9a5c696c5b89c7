// Package videochat provides video conferencing plugins.
//
// Every provider answers the same three actions through Execute:
//
//	{"action": "create_room", "room_name": "consult-42"}
//	{"action": "end_room", "room_id": "RM..."}
//	{"action": "get_token", "room_id": "RM...", "identity": "user-7"}
//
// Two providers are included: Twilio Programmable Video and Zoom
// Meetings. Both can share a session.Store so created rooms survive a
// process restart and tokens are only issued for rooms that are still
// live.
package videochat
