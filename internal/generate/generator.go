// Package generate drives the whole documentation run: discover files,
// scan entities, parse and render every docstring, and assemble the final
// Markdown document in deterministic traversal order.
package generate

import (
	"context"
	"sort"
	"strings"
	stdsync "sync"

	"golang.org/x/sync/errgroup"

	"github.com/g5becks/doksit/internal/config"
	"github.com/g5becks/doksit/internal/docstring"
	"github.com/g5becks/doksit/internal/entity"
	"github.com/g5becks/doksit/internal/render"
	"github.com/g5becks/doksit/internal/scan"
)

const defaultParallel = 4

// Options are per-invocation knobs layered over the config file.
type Options struct {
	Package  string
	Title    string
	Parallel int
}

// EntityWarning ties one recoverable finding to the entity it came from.
type EntityWarning struct {
	Entity  string
	Warning docstring.Warning
}

// ModuleResult is one file's rendered documentation plus its findings.
type ModuleResult struct {
	Module   *scan.Module
	Markdown string
	Warnings []EntityWarning
}

// Result is the assembled document for one run.
type Result struct {
	Markdown string
	Package  string
	Title    string
	Modules  []ModuleResult
	Warnings []EntityWarning
}

// Run generates the full API reference. Files render in parallel, but the
// document is assembled in the scanner's traversal order regardless of
// completion order.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	pkg := opts.Package
	if pkg == "" {
		pkg = cfg.Package
	}

	if pkg == "" {
		guessed, err := scan.GuessPackage(".")
		if err != nil {
			return nil, err
		}

		pkg = guessed
	}

	title := cfg.Title
	if opts.Title != "" {
		title = opts.Title
	}

	templatePath, templateBody, err := loadTemplate(cfg)
	if err != nil {
		return nil, err
	}

	var files []string
	if templateBody != "" {
		files, err = templateFiles(pkg, templatePath, templateBody)
	} else {
		files, err = scan.FindFiles(pkg, cfg.Include, cfg.Exclude)
	}

	if err != nil {
		return nil, err
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DetectBaseURL(ctx)
	}

	linker := render.NewLinker(baseURL)

	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = defaultParallel
	}

	results := make([]*ModuleResult, len(files))
	var resultsMu stdsync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallel)

	for i, file := range files {
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return groupCtx.Err()
			}

			mod, scanErr := scan.ScanFile(file)
			if scanErr != nil {
				return scanErr
			}

			rendered := renderModule(mod, linker, cfg.Alphabetical())

			resultsMu.Lock()
			results[i] = rendered
			resultsMu.Unlock()

			return nil
		})
	}

	if waitErr := group.Wait(); waitErr != nil {
		return nil, waitErr
	}

	result := &Result{Package: pkg, Title: title}

	var blocks []string
	for _, moduleResult := range results {
		if moduleResult == nil {
			continue
		}

		result.Modules = append(result.Modules, *moduleResult)
		result.Warnings = append(result.Warnings, moduleResult.Warnings...)

		if moduleResult.Markdown != "" {
			blocks = append(blocks, moduleResult.Markdown)
		}
	}

	if templateBody != "" {
		result.Markdown = spliceTemplate(pkg, templateBody, result.Modules)
	} else {
		document := append([]string{"# " + title}, blocks...)
		result.Markdown = strings.Join(document, "\n\n")
	}

	if len(cfg.Links) > 0 {
		result.Markdown += "\n\n" + referenceLinks(cfg.Links)
	}

	result.Markdown += "\n"

	return result, nil
}

// renderModule renders one scanned module: the module block, each class
// with its members, then each function. A module defining nothing is
// rendered empty; files defining nothing contribute nothing to the
// document.
func renderModule(mod *scan.Module, linker render.Linker, alphabetical bool) *ModuleResult {
	result := &ModuleResult{Module: mod}

	if !mod.Documentable() {
		return result
	}

	classes := mod.Classes
	functions := mod.Functions

	if alphabetical {
		classes = sortClasses(classes)
		functions = sortEntities(functions)
	}

	moduleBlock := renderEntity(result, mod.Entity, linker)

	if hasTokens(mod.Entity.Docstring) {
		result.Markdown = resolveTokens(result, moduleBlock, classes, functions, linker)
		return result
	}

	blocks := []string{moduleBlock}
	for i := range classes {
		blocks = append(blocks, renderClass(result, &classes[i], linker))
	}

	for _, fn := range functions {
		blocks = append(blocks, renderEntity(result, fn, linker))
	}

	result.Markdown = strings.Join(blocks, "\n\n")
	return result
}

func renderClass(result *ModuleResult, class *scan.Class, linker render.Linker) string {
	blocks := []string{renderEntity(result, class.Entity, linker)}

	for _, member := range class.Members {
		blocks = append(blocks, renderEntity(result, member, linker))
	}

	return strings.Join(blocks, "\n\n")
}

// renderEntity parses and renders one entity, folding its warnings into
// the module result. A hard metadata failure drops only this entity.
func renderEntity(result *ModuleResult, ent scan.Entity, linker render.Linker) string {
	model, warnings, err := docstring.Parse(ent.Docstring, ent.Meta)
	if err != nil {
		result.Warnings = append(result.Warnings, EntityWarning{
			Entity:  ent.Meta.QualifiedName,
			Warning: docstring.Warning{Code: "INVALID_METADATA", Message: err.Error()},
		})

		return ""
	}

	for _, w := range warnings {
		result.Warnings = append(result.Warnings, EntityWarning{
			Entity:  ent.Meta.QualifiedName,
			Warning: w,
		})
	}

	return render.Entity(model, ent.Meta, linker)
}

// sortClasses orders classes alphabetically and their members in
// constructor, properties, methods order, each group alphabetical.
func sortClasses(classes []scan.Class) []scan.Class {
	sorted := make([]scan.Class, len(classes))
	copy(sorted, classes)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Entity.Meta.Name < sorted[j].Entity.Meta.Name
	})

	for i := range sorted {
		sorted[i].Members = sortMembers(sorted[i].Members)
	}

	return sorted
}

func sortMembers(members []scan.Entity) []scan.Entity {
	rank := func(e scan.Entity) int {
		switch e.Meta.Kind {
		case entity.KindConstructor:
			return 0
		case entity.KindProperty:
			return 1
		default:
			return 2
		}
	}

	sorted := make([]scan.Entity, len(members))
	copy(sorted, members)

	sort.SliceStable(sorted, func(i, j int) bool {
		if rank(sorted[i]) != rank(sorted[j]) {
			return rank(sorted[i]) < rank(sorted[j])
		}

		return sorted[i].Meta.Name < sorted[j].Meta.Name
	})

	return sorted
}

func sortEntities(entities []scan.Entity) []scan.Entity {
	sorted := make([]scan.Entity, len(entities))
	copy(sorted, entities)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Meta.Name < sorted[j].Meta.Name
	})

	return sorted
}

// referenceLinks emits the configured reference links as Markdown link
// definitions, sorted so output stays deterministic.
func referenceLinks(links map[string]string) string {
	names := make([]string, 0, len(links))
	for name := range links {
		names = append(names, name)
	}

	sort.Strings(names)

	var lines []string
	for _, name := range names {
		lines = append(lines, "["+name+"]: "+links[name])
	}

	return strings.Join(lines, "\n")
}
