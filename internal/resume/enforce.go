package resume

// Enforce rewrites a generated resume so its section structure follows the
// original resume regardless of what the generator produced:
//
//   - repeated headers are merged into their first occurrence;
//   - CERTIFICATIONS and PROJECTS are kept only if the original had them;
//   - SUMMARY, SKILLS, EXPERIENCE and EDUCATION always exist, appended
//     empty when missing;
//   - EDUCATION is emptied when the original had none.
//
// Enforce is pure and idempotent for a fixed original.
func Enforce(generated, original string) string {
	doc := Merge(Split(generated))
	presence := PresenceMap(original)

	kept := doc.Sections[:0:0]
	for _, s := range doc.Sections {
		if isConditional(s.Header) && !presence.Has(s.Header) {
			continue
		}
		kept = append(kept, s)
	}

	have := map[Header]bool{}
	for _, s := range kept {
		have[s.Header] = true
	}
	for _, h := range Mandatory {
		if !have[h] {
			kept = append(kept, Section{Header: h})
		}
	}

	if !presence.Has(Education) {
		for i := range kept {
			if kept[i].Header == Education {
				kept[i].Body = nil
			}
		}
	}

	doc.Sections = kept
	return Join(doc)
}

// Merge folds every repeated header into its first occurrence. Bodies are
// concatenated in order with one blank line between two non-empty bodies.
func Merge(doc Document) Document {
	out := Document{Preamble: doc.Preamble}
	index := map[Header]int{}
	for _, s := range doc.Sections {
		i, seen := index[s.Header]
		if !seen {
			index[s.Header] = len(out.Sections)
			out.Sections = append(out.Sections, Section{
				Header: s.Header,
				Body:   append([]string(nil), s.Body...),
			})
			continue
		}
		first := trimBlock(out.Sections[i].Body)
		next := trimBlock(s.Body)
		switch {
		case len(next) == 0:
			out.Sections[i].Body = first
		case len(first) == 0:
			out.Sections[i].Body = next
		default:
			merged := append(first, "")
			out.Sections[i].Body = append(merged, next...)
		}
	}
	return out
}
