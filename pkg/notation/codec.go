package notation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tobagin/draughts-core/pkg/board"
	"github.com/tobagin/draughts-core/pkg/game"
	"github.com/tobagin/draughts-core/pkg/rules"
	"github.com/tobagin/draughts-core/pkg/variant"
)

// Record is a complete parsed or to-be-rendered game record.
type Record struct {
	Event, Date, White, Black string
	Variant                   variant.Variant
	Moves                     []board.Move
	Result                    string // one of "2-0", "0-2", "1-1", "*"
}

// Result strings for the notation's [Result] header.
const (
	ResultRedWins   = "2-0"
	ResultBlackWins = "0-2"
	ResultDraw      = "1-1"
	ResultOngoing   = "*"
)

// ResultForStatus maps an engine GameStatus to its notation result string.
func ResultForStatus(s board.GameStatus) string {
	switch s {
	case board.RedWins:
		return ResultRedWins
	case board.BlackWins:
		return ResultBlackWins
	case board.Draw:
		return ResultDraw
	default:
		return ResultOngoing
	}
}

var headerLine = regexp.MustCompile(`^\[(\w+)\s+(.+)\]$`)

// Render writes r as a portable numeric notation text.
func Render(r *Record) (string, error) {
	var sb strings.Builder

	writeHeader(&sb, "Event", r.Event)
	writeHeader(&sb, "Date", r.Date)
	writeHeader(&sb, "White", r.White)
	writeHeader(&sb, "Black", r.Black)
	fmt.Fprintf(&sb, "[GameType %d]\n", r.Variant.GameTypeCode)
	writeHeader(&sb, "Result", r.Result)
	sb.WriteString("\n")

	for i, m := range r.Moves {
		token, err := RenderMove(m)
		if err != nil {
			return "", err
		}
		if i%2 == 0 {
			fmt.Fprintf(&sb, "%d. %s", i/2+1, token)
		} else {
			fmt.Fprintf(&sb, " %s\n", token)
		}
	}
	if len(r.Moves)%2 == 1 {
		sb.WriteString("\n")
	}
	if r.Result != "" {
		sb.WriteString(r.Result)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func writeHeader(sb *strings.Builder, key, value string) {
	fmt.Fprintf(sb, "[%s %q]\n", key, value)
}

// RenderMove renders a single move as `from-to` (Simple) or `from×mid×…×to`
// (capture).
func RenderMove(m board.Move) (string, error) {
	fromNum, err := board.SquareNumber(m.From)
	if err != nil {
		return "", err
	}

	if !m.IsCapture() {
		toNum, err := board.SquareNumber(m.To)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d-%d", fromNum, toNum), nil
	}

	parts := []string{strconv.Itoa(fromNum)}
	for _, pos := range m.Path {
		n, err := board.SquareNumber(pos)
		if err != nil {
			return "", err
		}
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, "×"), nil
}

// Parse reads a portable numeric notation text and replays its moves through
// the rule engine for the named variant, resolving each token to the fully
// authoritative Move the engine itself would have produced.
func Parse(input string) (*Record, error) {
	r := &Record{}
	var gameTypeSet bool

	lines := strings.Split(input, "\n")
	var moveText []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") {
			key, value, err := parseHeaderLine(line)
			if err != nil {
				return nil, err
			}
			switch key {
			case "Event":
				r.Event = value
			case "Date":
				r.Date = value
			case "White":
				r.White = value
			case "Black":
				r.Black = value
			case "Result":
				r.Result = value
			case "GameType":
				code, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("%w: GameType %q", ErrUnknownHeader, value)
				}
				v, err := variant.ByGameTypeCode(code)
				if err != nil {
					return nil, fmt.Errorf("%w: %d", ErrUnknownGameType, code)
				}
				r.Variant = v
				gameTypeSet = true
			}
			continue
		}
		moveText = append(moveText, line)
	}

	if !gameTypeSet {
		return nil, fmt.Errorf("%w: missing [GameType NN] header", ErrUnknownHeader)
	}

	tokens := tokenizeMoves(strings.Join(moveText, " "), r.Result)

	m := game.NewMachine(r.Variant, false)
	for _, tok := range tokens {
		legal := rules.GenerateLegalMoves(m.LiveState(), r.Variant)
		move, err := resolveToken(legal, tok)
		if err != nil {
			return nil, err
		}
		if err := m.Apply(move); err != nil {
			return nil, err
		}
	}
	r.Moves = m.History()

	return r, nil
}

var moveNumberToken = regexp.MustCompile(`^\d+\.$`)

func tokenizeMoves(s string, result string) []string {
	var out []string
	for _, f := range strings.Fields(s) {
		if moveNumberToken.MatchString(f) {
			continue
		}
		if f == result && result != "" {
			continue
		}
		if f == ResultRedWins || f == ResultBlackWins || f == ResultDraw || f == ResultOngoing {
			continue
		}
		out = append(out, f)
	}
	return out
}

func parseHeaderLine(line string) (key, value string, err error) {
	match := headerLine.FindStringSubmatch(line)
	if match == nil {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownHeader, line)
	}
	key = match[1]
	value = strings.Trim(match[2], `"`)
	return key, value, nil
}

func resolveToken(legal []board.Move, token string) (board.Move, error) {
	for _, m := range legal {
		rendered, err := RenderMove(m)
		if err != nil {
			continue
		}
		if rendered == token {
			return m, nil
		}
	}
	return board.Move{}, fmt.Errorf("%w: %q", ErrUnresolvedMove, token)
}
