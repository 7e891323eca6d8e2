package format

import (
	"context"
	"strings"

	"bennypowers.dev/classwrap/internal/classname"
	"bennypowers.dev/classwrap/internal/config"
	"bennypowers.dev/classwrap/internal/host"
	"bennypowers.dev/classwrap/internal/log"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/tidwall/btree"
)

// Formatter runs the class-name wrapping around a host formatter
type Formatter struct {
	registry *host.Registry
}

// New creates a formatter that resolves host capabilities from registry
func New(registry *host.Registry) *Formatter {
	return &Formatter{registry: registry}
}

// Format formats text with the built-in host capabilities
func Format(ctx context.Context, path, text string, opts config.Options) (string, error) {
	return New(host.Builtin()).Format(ctx, path, text, opts)
}

// Format formats the document at path, whose content is text.
//
// The host prints the input once (pass 1). Class names found in that
// output are rewritten, and the host prints the result again (pass 2).
// Settle passes then re-walk the output until it stops changing, which
// picks up occurrences whose column moved because an enclosing or
// preceding construct was rewritten.
func (f *Formatter) Format(ctx context.Context, path, text string, opts config.Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	name := opts.Parser
	if name == "" {
		if name = host.InferParser(path); name == "" {
			return "", config.NewInvalidOptionError("parser", `""`, "cannot be inferred from "+path)
		}
	}
	capability, err := f.registry.Resolve(name)
	if err != nil {
		return "", err
	}

	eol := opts.EndOfLine
	if eol == config.Auto {
		eol = DetectEndOfLine(text)
	}
	r := span{start: 0, end: config.Unbounded}
	if opts.Ranged() {
		r = span{start: normalizedOffset(text, opts.RangeStart), end: normalizedOffset(text, opts.RangeEnd)}
	}
	text = normalizeEOL(text)

	printOpts := host.PrintOptions{
		Filepath:       path,
		Parser:         name,
		PrintWidth:     opts.PrintWidth,
		TabWidth:       opts.TabWidth,
		UseTabs:        opts.UseTabs,
		SingleQuote:    opts.SingleQuote,
		JSXSingleQuote: opts.JSXSingleQuote,
	}

	printed, err := capability.Print(ctx, text, printOpts)
	if err != nil {
		return "", NewHostError(1, name, err)
	}
	printed = normalizeEOL(printed)

	s := &stage{capability: capability, opts: opts, settings: opts.Settings()}
	rewritten, depth, err := s.rewrite(ctx, printed, r)
	if err != nil {
		return "", NewHostError(1, name, err)
	}
	if rewritten == printed {
		return convertEOL(printed, eol), nil
	}

	out, err := capability.Print(ctx, rewritten, printOpts)
	if err != nil {
		log.Debug("Rewritten text rejected by %s:\n%s", name, rewritten)
		return "", NewSecondPassError(name, rewritten, err)
	}
	out = normalizeEOL(out)

	// Ranged formats stop here: offsets into the original no longer
	// describe the settled text.
	if opts.Ranged() {
		return convertEOL(out, eol), nil
	}

	for i := 0; i < 1+depth; i++ {
		next, _, err := s.rewrite(ctx, out, r)
		if err != nil {
			return "", NewSecondPassError(name, out, err)
		}
		if next == out {
			break
		}
		log.Debug("Settle pass %d changed %s", i+1, path)
		if out, err = capability.Print(ctx, next, printOpts); err != nil {
			return "", NewSecondPassError(name, next, err)
		}
		out = normalizeEOL(out)
	}

	return convertEOL(out, eol), nil
}

// Check formats text and formats the result again. It returns the first
// result, and a NotIdempotentError when the second differs from it.
func (f *Formatter) Check(ctx context.Context, path, text string, opts config.Options) (string, error) {
	once, err := f.Format(ctx, path, text, opts)
	if err != nil {
		return "", err
	}
	twice, err := f.Format(ctx, path, once, opts)
	if err != nil {
		return once, err
	}
	if twice != once {
		return once, NewNotIdempotentError(path, Diff(path, once, twice))
	}
	return once, nil
}

// Diff renders a unified diff between two versions of a document
func Diff(path, a, b string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: path,
		ToFile:   path + " (formatted)",
		Context:  3,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

// span is a half-open byte range
type span struct {
	start, end int
}

func (s span) overlaps(start, end int) bool {
	return start < s.end && end > s.start
}

// edit replaces text[start:end] with text
type edit struct {
	start, end int
	text       string
}

// stage is one walk-and-rewrite over a document
type stage struct {
	capability host.Capability
	opts       config.Options
	settings   classname.Settings
}

// rewrite parses text, rewrites the occurrences inside r and returns the
// new text along with the deepest nesting seen
func (s *stage) rewrite(ctx context.Context, text string, r span) (string, int, error) {
	tree, err := s.capability.Parse(ctx, text)
	if err != nil {
		return "", 0, err
	}
	occs := tree.Occurrences(s.opts.Matcher())
	tree.Close()

	var edits btree.Map[int, edit]
	depth, last := 0, -1
	for _, occ := range occs {
		if !r.overlaps(occ.Start, occ.End) {
			continue
		}
		if occ.Start < last {
			log.Debug("Skipping overlapping %s", occ)
			continue
		}
		last = occ.End
		depth = max(depth, occ.Depth())

		occ.Locate(text, s.settings)
		if repl, changed := classname.Rewrite(text, occ, s.settings); changed {
			edits.Set(occ.Start, edit{start: occ.Start, end: occ.End, text: repl})
		}
	}

	return apply(text, &edits), depth, nil
}

// apply splices edits into text from the last to the first, so that
// earlier offsets stay valid
func apply(text string, edits *btree.Map[int, edit]) string {
	if edits.Len() == 0 {
		return text
	}
	var b strings.Builder
	out := text
	iter := edits.Iter()
	for more := iter.Last(); more; more = iter.Prev() {
		e := iter.Value()
		b.Reset()
		b.Grow(len(out) - (e.end - e.start) + len(e.text))
		b.WriteString(out[:e.start])
		b.WriteString(e.text)
		b.WriteString(out[e.end:])
		out = b.String()
	}
	return out
}
