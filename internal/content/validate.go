package content

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/replicate/keepsake-site/internal/foundation/errors"
	"github.com/replicate/keepsake-site/internal/markdown"
)

// Validate checks structural invariants of the page records: known regions,
// unique non-empty feature anchors, matching desktop/mobile samples and fully
// expanded link targets.
func Validate(p *Page) error {
	var problems []string

	ids := make(map[string]bool)
	for i, s := range p.Sections {
		if !s.Region.Known() {
			problems = append(problems, fmt.Sprintf("section %d: unknown region %q", i, s.Region))
		}
		if strings.TrimSpace(s.Heading) == "" {
			problems = append(problems, fmt.Sprintf("section %d: empty heading", i))
		}
		if s.ID != "" {
			if ids[s.ID] {
				problems = append(problems, fmt.Sprintf("section %d: duplicate id %q", i, s.ID))
			}
			ids[s.ID] = true
		}
		if len(s.Features) > 0 && s.Region != RegionFeatures {
			problems = append(problems, fmt.Sprintf("section %d: features outside the features region", i))
		}
		for j, f := range s.Features {
			switch {
			case f.ID == "":
				problems = append(problems, fmt.Sprintf("section %d feature %d: empty id", i, j))
			case ids[f.ID]:
				problems = append(problems, fmt.Sprintf("section %d feature %d: duplicate id %q", i, j, f.ID))
			}
			ids[f.ID] = true
		}
		problems = append(problems, checkVariants(i, s.Code)...)
	}

	links, err := p.Links()
	if err != nil {
		return err
	}
	for _, l := range links {
		if strings.Contains(l, "${") {
			problems = append(problems, fmt.Sprintf("unexpanded placeholder in link %q", l))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.ValidationError(fmt.Sprintf("page content has %d problem(s)", len(problems))).
		WithContext("problems", problems).
		Build()
}

func checkVariants(section int, samples []CodeSample) []string {
	var desktop, mobile []CodeSample
	for _, c := range samples {
		switch c.Variant {
		case VariantDesktop:
			desktop = append(desktop, c)
		case VariantMobile:
			mobile = append(mobile, c)
		case VariantAny:
		default:
			return []string{fmt.Sprintf("section %d: unknown code variant %q", section, c.Variant)}
		}
	}
	if len(desktop) == 0 && len(mobile) == 0 {
		return nil
	}
	if len(desktop) != len(mobile) {
		return []string{fmt.Sprintf("section %d: %d desktop and %d mobile samples", section, len(desktop), len(mobile))}
	}
	var out []string
	for k := range desktop {
		if !Equivalent(desktop[k].Source, mobile[k].Source) {
			msg := fmt.Sprintf("section %d: desktop and mobile sample %d differ", section, k)
			if dc, mc := APICalls(desktop[k].Source), APICalls(mobile[k].Source); !slices.Equal(dc, mc) {
				msg += fmt.Sprintf(" (calls [%s] vs [%s])", strings.Join(dc, ", "), strings.Join(mc, ", "))
			}
			out = append(out, msg)
		}
	}
	return out
}

// Links returns every link target on the page in document order: hero actions,
// prose links, images and the closing call to action.
func (p *Page) Links() ([]string, error) {
	var out []string
	for _, a := range p.Hero.Actions {
		out = append(out, a.Href)
	}
	collect := func(body string) error {
		if body == "" {
			return nil
		}
		links, err := markdown.ExtractLinks([]byte(body), markdown.Options{Vars: p.vars})
		if err != nil {
			return errors.WrapError(err, errors.CategoryContent, "failed to parse prose").Build()
		}
		for _, l := range links {
			out = append(out, l.Destination)
		}
		return nil
	}
	for _, s := range p.Sections {
		if err := collect(s.Body); err != nil {
			return nil, err
		}
		for _, f := range s.Features {
			if err := collect(f.Body); err != nil {
				return nil, err
			}
			if f.Image != nil {
				out = append(out, f.Image.Src)
			}
		}
	}
	out = append(out, p.Closing.Primary.Href, p.Closing.Secondary.Href)
	return out, nil
}

var trailingComma = regexp.MustCompile(`,([)\]}])`)

// Equivalent reports whether two code listings express the same program, ignoring
// comments, highlight markers, layout and trailing commas.
func Equivalent(a, b string) bool {
	return normalize(a) == normalize(b)
}

func normalize(src string) string {
	var sb strings.Builder
	for _, line := range strings.Split(stripComments(src), "\n") {
		for _, r := range line {
			if !unicode.IsSpace(r) {
				sb.WriteRune(r)
			}
		}
	}
	return trailingComma.ReplaceAllString(sb.String(), "$1")
}

func stripComments(src string) string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		lines[i] = stripComment(line)
	}
	return strings.Join(lines, "\n")
}

// stripComment drops everything after a '#' outside string literals.
func stripComment(line string) string {
	var quote rune
	for j, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '#':
			return line[:j]
		}
	}
	return line
}

var callPattern = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)+)\s*\(`)

// APICalls returns the dotted calls in src in order of appearance, e.g. keepsake.init.
func APICalls(src string) []string {
	var out []string
	for _, m := range callPattern.FindAllStringSubmatch(stripComments(src), -1) {
		out = append(out, m[1])
	}
	return out
}
