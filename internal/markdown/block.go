package markdown

import "strings"

// Scan splits raw markdown source into an ordered sequence of typed blocks.
// It is total: every line shape that matches nothing else accumulates into a
// paragraph, so scanning never fails.
func Scan(source string) []Block {
	var (
		blocks    []Block
		paragraph []string // pending paragraph lines, joined with single spaces
		inFence   bool
		fenceLang string
		fenceBody strings.Builder
	)

	flush := func() {
		if len(paragraph) == 0 {
			return
		}
		text := strings.Join(paragraph, " ")
		paragraph = paragraph[:0]
		if strings.TrimSpace(text) == "" {
			return
		}
		blocks = append(blocks, Block{Kind: BlockParagraph, Text: text})
	}

	for _, line := range strings.Split(source, "\n") {
		if inFence {
			if strings.HasPrefix(line, "```") {
				blocks = append(blocks, Block{
					Kind:     BlockCodeBlock,
					Code:     fenceBody.String(),
					Language: fenceLang,
				})
				fenceBody.Reset()
				inFence = false
				continue
			}
			fenceBody.WriteString(line)
			fenceBody.WriteByte('\n')
			continue
		}

		switch {
		case strings.HasPrefix(line, "```"):
			flush()
			inFence = true
			fenceLang = strings.TrimSpace(line[3:])

		case isHeading(line):
			flush()
			level := leadingHashes(line)
			blocks = append(blocks, Block{
				Kind:  BlockHeading,
				Level: level,
				Text:  strings.TrimSpace(line[level+1:]),
			})

		case isUnorderedItem(line):
			flush()
			blocks = append(blocks, Block{
				Kind: BlockUnorderedListItem,
				Text: strings.TrimSpace(line[2:]),
			})

		case isOrderedItem(line):
			flush()
			digits := leadingDigits(line)
			blocks = append(blocks, Block{
				Kind:    BlockOrderedListItem,
				Ordinal: line[:digits],
				Text:    strings.TrimSpace(line[digits+1:]),
			})

		case strings.HasPrefix(line, ">"):
			flush()
			blocks = append(blocks, Block{
				Kind: BlockBlockquote,
				Text: strings.TrimLeft(line[1:], " \t"),
			})

		case strings.TrimSpace(line) == "":
			flush()

		default:
			paragraph = append(paragraph, strings.TrimSpace(line))
		}
	}

	// An unterminated fence still yields its accumulated body.
	if inFence {
		blocks = append(blocks, Block{
			Kind:     BlockCodeBlock,
			Code:     fenceBody.String(),
			Language: fenceLang,
		})
	}
	flush()

	return blocks
}

func leadingHashes(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	return n
}

// isHeading reports whether line is an ATX heading: 1-6 '#' markers, a space,
// then content. Seven or more markers do not qualify and the line falls
// through to paragraph accumulation.
func isHeading(line string) bool {
	n := leadingHashes(line)
	if n < 1 || n > 6 {
		return false
	}
	if n >= len(line) || line[n] != ' ' {
		return false
	}
	return strings.TrimSpace(line[n+1:]) != ""
}

func isUnorderedItem(line string) bool {
	if len(line) < 3 {
		return false
	}
	c := line[0]
	return (c == '*' || c == '-' || c == '+') && line[1] == ' ' && strings.TrimSpace(line[2:]) != ""
}

func leadingDigits(line string) int {
	n := 0
	for n < len(line) && line[n] >= '0' && line[n] <= '9' {
		n++
	}
	return n
}

func isOrderedItem(line string) bool {
	n := leadingDigits(line)
	if n == 0 || n+1 >= len(line) {
		return false
	}
	return line[n] == '.' && line[n+1] == ' ' && strings.TrimSpace(line[n+2:]) != ""
}
