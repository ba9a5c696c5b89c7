package component

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/deaffirst/enterprise-sdk"
	"github.com/deaffirst/enterprise-sdk/plugin"
)

// Apply registers every applicable configuration entry with the
// registry. Entries whose "when" expression evaluates to false against
// environ are skipped. The first failing entry aborts the bootstrap;
// partial application is acceptable because registrations are
// independent and the caller is expected to treat a failed bootstrap
// as fatal.
func Apply(ctx context.Context, reg *enterprise.Registry, cfg *Config, catalog Catalog, environ map[string]string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	celEnv, err := cel.NewEnv(
		cel.Variable("env", cel.MapType(cel.StringType, cel.StringType)),
	)
	if err != nil {
		return fmt.Errorf("failed to create expression environment: %w", err)
	}

	for _, entry := range cfg.Plugins {
		applicable, err := evalWhen(celEnv, entry.When, environ)
		if err != nil {
			return fmt.Errorf("plugin %s/%s: %w", entry.Category, entry.Name, err)
		}
		if !applicable {
			continue
		}

		category, err := plugin.ParseCategory(entry.Category)
		if err != nil {
			return fmt.Errorf("plugin %s/%s: %w", entry.Category, entry.Name, err)
		}

		factory, ok := catalog.Lookup(entry.Category, entry.Provider)
		if !ok {
			return fmt.Errorf("plugin %s/%s: no provider %q in catalog",
				entry.Category, entry.Name, entry.Provider)
		}

		if err := reg.Register(ctx, category, entry.Name, factory, plugin.Settings(entry.Settings)); err != nil {
			return fmt.Errorf("plugin %s/%s: %w", entry.Category, entry.Name, err)
		}
	}
	return nil
}

// evalWhen evaluates a CEL gate expression. An empty expression is
// always applicable.
func evalWhen(env *cel.Env, expr string, environ map[string]string) (bool, error) {
	if expr == "" {
		return true, nil
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return false, fmt.Errorf("invalid when expression %q: %w", expr, iss.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("invalid when expression %q: %w", expr, err)
	}

	if environ == nil {
		environ = map[string]string{}
	}
	out, _, err := prg.Eval(map[string]any{"env": environ})
	if err != nil {
		return false, fmt.Errorf("evaluating when expression %q: %w", expr, err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("when expression %q must evaluate to a boolean, got %T",
			expr, out.Value())
	}
	return result, nil
}
