package generate

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/samber/oops"

	"github.com/g5becks/doksit/internal/config"
	"github.com/g5becks/doksit/internal/docstring"
	"github.com/g5becks/doksit/internal/render"
	"github.com/g5becks/doksit/internal/scan"
)

// tokenRegex matches `{{ identifier }}` inclusion tokens in module
// docstrings and `{{ relative/path.py }}` tokens in template files.
var tokenRegex = regexp.MustCompile(`{{ ?([\S]+) ?}}`)

const defaultTemplate = "docs/_api.md"

func hasTokens(text string) bool {
	return strings.Contains(text, "{{ ")
}

// loadTemplate reads the configured template file, or the conventional
// docs/_api.md when one exists. No template is not an error.
func loadTemplate(cfg *config.Config) (string, string, error) {
	templatePath := cfg.Template
	explicit := templatePath != ""

	if templatePath == "" {
		templatePath = defaultTemplate
	}

	if !filepath.IsAbs(templatePath) && cfg.ConfigDir != "" {
		templatePath = filepath.Join(cfg.ConfigDir, templatePath)
	}

	body, err := os.ReadFile(templatePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return "", "", nil
		}

		return "", "", oops.
			Code("TEMPLATE_INVALID").
			With("path", templatePath).
			Wrapf(err, "reading template file")
	}

	return templatePath, string(body), nil
}

// templateFiles resolves a template's file tokens into the file list to
// document. Every token must name an existing file inside the package.
func templateFiles(pkg, templatePath, body string) ([]string, error) {
	var files []string

	for _, match := range tokenRegex.FindAllStringSubmatch(body, -1) {
		file := path.Join(pkg, match[1])

		if info, err := os.Stat(file); err != nil || info.IsDir() {
			return nil, oops.
				Code("TEMPLATE_INVALID").
				With("template", templatePath).
				With("token", match[1]).
				Hint("Template tokens must be file paths relative to the package directory").
				Errorf("invalid file path %q in the template", match[1])
		}

		files = append(files, file)
	}

	return files, nil
}

// spliceTemplate replaces each `{{ path }}` token in the template body
// with the matching module's rendered documentation.
func spliceTemplate(pkg, body string, modules []ModuleResult) string {
	for _, moduleResult := range modules {
		rel := strings.TrimPrefix(filepath.ToSlash(moduleResult.Module.RelPath), pkg+"/")
		token := "{{ " + rel + " }}"
		body = strings.ReplaceAll(body, token, moduleResult.Markdown)
	}

	return body
}

// resolveTokens handles inclusion tokens inside a module docstring: each
// `{{ Name }}` naming a class or function of the module is replaced by
// that entity's full rendered block; anything else leaves a warning and
// the token is dropped. Entities not referenced by a token are omitted.
func resolveTokens(result *ModuleResult, moduleBlock string, classes []scan.Class, functions []scan.Entity, linker render.Linker) string {
	return tokenRegex.ReplaceAllStringFunc(moduleBlock, func(token string) string {
		name := tokenRegex.FindStringSubmatch(token)[1]

		for i := range classes {
			if classes[i].Entity.Meta.Name == name {
				return renderClass(result, &classes[i], linker)
			}
		}

		for _, fn := range functions {
			if fn.Meta.Name == name {
				return renderEntity(result, fn, linker)
			}
		}

		result.Warnings = append(result.Warnings, EntityWarning{
			Entity: result.Module.Entity.Meta.QualifiedName,
			Warning: docstring.Warning{
				Code:    "TOKEN_UNRESOLVED",
				Message: "token " + token + " does not name a class or function of this module",
			},
		})

		return ""
	})
}
