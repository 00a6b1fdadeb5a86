package runner

// sectionFromRecord converts one generic query record into a typed Section.
// The query engine's output is a dynamic-typing boundary: every field is
// coerced with an explicit type check and a default rather than assumed.
func (r *Runner) sectionFromRecord(dict map[string]any) Section {
	section := Section{
		Title: stringField(dict, "title", ""),
		Level: intField(dict, "level", r.config.HeadingLevel),
	}

	if desc, ok := dict["description"].(string); ok {
		section.Description = desc
	}

	if codes, ok := dict["codes"].([]any); ok {
		section.Codes = codeBlocksFromRecords(codes)
	}

	return section
}

func codeBlocksFromRecords(records []any) []CodeBlock {
	blocks := make([]CodeBlock, 0, len(records))
	for _, record := range records {
		dict, ok := record.(map[string]any)
		if !ok {
			continue
		}
		blocks = append(blocks, CodeBlock{
			Lang: stringField(dict, "lang", ""),
			Code: stringField(dict, "code", ""),
		})
	}
	return blocks
}

func stringField(dict map[string]any, key, fallback string) string {
	if s, ok := dict[key].(string); ok {
		return s
	}
	return fallback
}

func intField(dict map[string]any, key string, fallback int) int {
	switch n := dict[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return fallback
	}
}
