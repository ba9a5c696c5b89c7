// Package interpreter provides ASL interpretation plugins.
//
// Every provider answers the same actions through Execute:
//
//	{"action": "request_interpreter", "session_type": "medical"}
//	{"action": "embed_interpreter", "video_url": "https://..."}
//
// Three providers are included: VSLLabs (AI avatar interpretation),
// SignASL (scheduled live interpreters), and PinkSync (deaf-first
// platform with gloss conversion on the premium tier). PinkSync adds a
// convert_gloss action.
package interpreter
