package pagelens

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// BlockKind identifies the structure a Block represents.
type BlockKind int

// Block kinds produced by ScanBlocks.
const (
	BlockSectionTitle BlockKind = iota + 1
	BlockTitledItem
	BlockNumberedItem
	BlockProse
)

// String returns the kind's name.
func (k BlockKind) String() string {
	switch k {
	case BlockSectionTitle:
		return "section_title"
	case BlockTitledItem:
		return "titled_item"
	case BlockNumberedItem:
		return "numbered_item"
	case BlockProse:
		return "prose"
	}
	return "unknown"
}

// Block is one structural unit of a formatted model response.
type Block struct {
	Kind BlockKind

	// Title is set for section titles, titled items and numbered items.
	Title string

	// Index is the number of a numbered item.
	Index int

	// Lines holds the trimmed, non-blank description lines of an item.
	Lines []string

	// Description is Lines HTML-escaped and joined with <br/>.
	Description string

	// Markdown is the source of a prose block; HTML is its rendering.
	Markdown string
	HTML     string
}

// HTMLString renders the block as an HTML fragment.
func (b Block) HTMLString() string {
	switch b.Kind {
	case BlockSectionTitle:
		return `<div class="section-title">` + html.EscapeString(b.Title) + `</div>`
	case BlockTitledItem:
		if b.Description == "" {
			return `<div class="titled-item"><b>` + html.EscapeString(b.Title) + `:</b></div>`
		}
		return `<div class="titled-item"><b>` + html.EscapeString(b.Title) + `:</b> ` + b.Description + `</div>`
	case BlockNumberedItem:
		return `<div class="rec-block"><div class="rec-title"><span class="rec-index">` + strconv.Itoa(b.Index) + `.</span> ` +
			html.EscapeString(b.Title) + `</div><div class="rec-desc">` + b.Description + `</div></div>`
	case BlockProse:
		return b.HTML
	}
	return ""
}

// Formatter turns a model response into display blocks.
type Formatter interface {
	// Format returns the blocks for text. ModeUI yields a single prose
	// block; ModeUX yields the blocks found by ScanBlocks.
	Format(text string, mode Mode) ([]Block, error)
}

// SectionHeaders are the lines that open a section of a UX review.
var SectionHeaders = []string{"Pros:", "Cons:", "Recommendations:"}

var (
	titledItemRe   = regexp.MustCompile(`^\*\*(.+)\*\*\s*:\s*(.*)`)
	numberedItemRe = regexp.MustCompile(`^(\d+)\.(?:\s+(.*))?$`)
)

type lineKind int

const (
	lineText lineKind = iota
	lineSectionHeader
	lineTitledItem
	lineNumberedItem
)

// classifyLine reports what line starts. For item starts it also returns
// the block opened by the line.
func classifyLine(line string) (lineKind, Block) {
	if trimmed := strings.TrimSpace(line); trimmed == line {
		for _, h := range SectionHeaders {
			if line == h {
				return lineSectionHeader, Block{Kind: BlockSectionTitle, Title: line}
			}
		}
	}

	if m := titledItemRe.FindStringSubmatch(line); m != nil {
		b := Block{Kind: BlockTitledItem, Title: strings.TrimSpace(m[1])}
		if desc := strings.TrimSpace(m[2]); desc != "" {
			b.Lines = []string{desc}
		}
		return lineTitledItem, b
	}

	if m := numberedItemRe.FindStringSubmatch(line); m != nil {
		if index, err := strconv.Atoi(m[1]); err == nil {
			return lineNumberedItem, Block{Kind: BlockNumberedItem, Index: index, Title: strings.TrimSpace(m[2])}
		}
	}

	return lineText, Block{}
}

type scanState int

const (
	stateScanning scanState = iota
	stateTitledItem
	stateNumberedItem
	stateProse
)

// blockScanner is a forward-only state machine over response lines. Each
// transition out of an accumulating state emits the finished block.
type blockScanner struct {
	state   scanState
	current Block
	prose   []string
	blocks  []Block
}

// ScanBlocks splits a UX review into blocks in document order. Every
// non-blank line of text ends up in exactly one block. Prose blocks carry
// their Markdown source only; rendering is left to a Formatter.
func ScanBlocks(text string) []Block {
	s := &blockScanner{}
	for _, line := range strings.Split(text, "\n") {
		s.scan(strings.TrimRightFunc(line, unicode.IsSpace))
	}
	s.flush()
	return s.blocks
}

func (s *blockScanner) scan(line string) {
	kind, block := classifyLine(line)
	switch kind {
	case lineSectionHeader:
		s.flush()
		s.blocks = append(s.blocks, block)
	case lineTitledItem:
		s.flush()
		s.current = block
		s.state = stateTitledItem
	case lineNumberedItem:
		s.flush()
		s.current = block
		s.state = stateNumberedItem
	default:
		switch s.state {
		case stateTitledItem, stateNumberedItem:
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				s.current.Lines = append(s.current.Lines, trimmed)
			}
		case stateProse:
			s.prose = append(s.prose, line)
		default:
			s.prose = []string{line}
			s.state = stateProse
		}
	}
}

// flush emits the block being accumulated and returns to scanning.
func (s *blockScanner) flush() {
	switch s.state {
	case stateTitledItem, stateNumberedItem:
		s.current.Description = joinDescription(s.current.Lines)
		s.blocks = append(s.blocks, s.current)
	case stateProse:
		// Runs of blank lines carry no content.
		if md := strings.Trim(strings.Join(s.prose, "\n"), "\n"); md != "" {
			s.blocks = append(s.blocks, Block{Kind: BlockProse, Markdown: md})
		}
	}
	s.state = stateScanning
	s.current = Block{}
	s.prose = nil
}

func joinDescription(lines []string) string {
	escaped := make([]string, len(lines))
	for i, l := range lines {
		escaped[i] = html.EscapeString(l)
	}
	return strings.Join(escaped, "<br/>")
}
