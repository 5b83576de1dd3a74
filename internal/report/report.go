// Package report renders service results as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/cardshoe/internal/deck"
	"github.com/lox/cardshoe/internal/service"
	"github.com/lox/cardshoe/internal/simulator"
)

const timeLayout = time.DateTime

// Printer writes styled reports to a writer
type Printer struct {
	w      io.Writer
	styles Styles
}

// New creates a printer for w. plain disables colour.
func New(w io.Writer, plain bool) *Printer {
	return &Printer{w: w, styles: newStyles(newRenderer(w, plain))}
}

func (p *Printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

func (p *Printer) title(s string) {
	p.println(p.styles.Title.Render(s))
}

func (p *Printer) table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.styles.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.styles.Header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)
	p.println(t.String())
}

func (p *Printer) field(label, value string) {
	p.println(p.styles.Label.Render(label+":") + " " + value)
}

// Card renders one card, coloured by suit
func (p *Printer) Card(c service.CardView) string {
	style := p.styles.CardBlack
	if c.Suit.IsRed() {
		style = p.styles.CardRed
	}
	return style.Render(fmt.Sprintf("%s of %s %s", c.Rank, c.Suit, c.Suit.Symbol()))
}

// Deck prints a single deck
func (p *Printer) Deck(d service.DeckView) {
	p.title("Deck " + d.Name)
	p.field("ID", d.ID)
	p.field("Cards", strconv.Itoa(d.CardCount))
	p.field("Created", d.CreatedAt.Format(timeLayout))
	p.field("Updated", d.UpdatedAt.Format(timeLayout))
}

// Decks prints a deck listing
func (p *Printer) Decks(decks []service.DeckView) {
	if len(decks) == 0 {
		p.println(p.styles.Muted.Render("No decks"))
		return
	}
	rows := make([][]string, len(decks))
	for i, d := range decks {
		rows[i] = []string{d.ID, d.Name, strconv.Itoa(d.CardCount), d.CreatedAt.Format(timeLayout)}
	}
	p.table([]string{"ID", "Name", "Cards", "Created"}, rows)
}

// Player prints a player and their hand
func (p *Printer) Player(pl service.PlayerView) {
	p.title("Player " + pl.Name)
	p.field("ID", pl.ID)
	p.field("Total value", strconv.Itoa(pl.TotalValue))
	p.field("Updated", pl.UpdatedAt.Format(timeLayout))
	p.Cards(pl.Cards)
}

// Players prints a player listing
func (p *Printer) Players(players []service.PlayerView) {
	if len(players) == 0 {
		p.println(p.styles.Muted.Render("No players"))
		return
	}
	rows := make([][]string, len(players))
	for i, pl := range players {
		rows[i] = []string{pl.ID, pl.Name, strconv.Itoa(len(pl.Cards)), strconv.Itoa(pl.TotalValue)}
	}
	p.table([]string{"ID", "Name", "Cards", "Total"}, rows)
}

// Game prints a game summary
func (p *Printer) Game(g service.GameView) {
	p.title("Game " + g.Name)
	p.field("ID", g.ID)
	p.field("Players", strconv.Itoa(g.PlayerCount))
	p.field("Undealt cards", strconv.Itoa(g.UndealtCount))
	p.field("Created", g.CreatedAt.Format(timeLayout))
	p.field("Updated", g.UpdatedAt.Format(timeLayout))
}

// Games prints a game listing
func (p *Printer) Games(games []service.GameView) {
	if len(games) == 0 {
		p.println(p.styles.Muted.Render("No games"))
		return
	}
	rows := make([][]string, len(games))
	for i, g := range games {
		rows[i] = []string{g.ID, g.Name, strconv.Itoa(g.PlayerCount), strconv.Itoa(g.UndealtCount)}
	}
	p.table([]string{"ID", "Name", "Players", "Undealt"}, rows)
}

// Cards prints a list of cards in the given order
func (p *Printer) Cards(cards []service.CardView) {
	if len(cards) == 0 {
		p.println(p.styles.Muted.Render("No cards"))
		return
	}
	rows := make([][]string, len(cards))
	for i, c := range cards {
		rows[i] = []string{p.Card(c), strconv.Itoa(c.FaceValue), c.ID}
	}
	p.table([]string{"Card", "Value", "ID"}, rows)
}

// Deal prints the outcome of a deal request
func (p *Printer) Deal(r service.DealResult) {
	msg := fmt.Sprintf("Dealt %d card(s) to %s", len(r.Dealt), r.Player.Name)
	if r.Short() {
		p.println(p.styles.Warning.Render(fmt.Sprintf("%s (requested %d, shoe exhausted)", msg, r.Requested)))
	} else {
		p.println(p.styles.Success.Render(msg))
	}
	if len(r.Dealt) > 0 {
		p.Cards(r.Dealt)
	}
	p.field("Hand value", strconv.Itoa(r.Player.TotalValue))
	p.field("Undealt cards", strconv.Itoa(r.Game.UndealtCount))
}

// Scores prints players ranked by hand value
func (p *Printer) Scores(scores []service.PlayerScore) {
	if len(scores) == 0 {
		p.println(p.styles.Muted.Render("No players"))
		return
	}
	rows := make([][]string, len(scores))
	for i, s := range scores {
		rows[i] = []string{strconv.Itoa(i + 1), s.Name, strconv.Itoa(s.TotalValue), strconv.Itoa(s.CardCount), s.ID}
	}
	p.table([]string{"#", "Player", "Total", "Cards", "ID"}, rows)
}

// SuitCounts prints undealt counts per suit in deck order
func (p *Printer) SuitCounts(counts map[deck.Suit]int) {
	rows := make([][]string, 0, deck.NumSuits)
	for _, s := range deck.Suits() {
		rows = append(rows, []string{s.Symbol() + " " + s.String(), strconv.Itoa(counts[s])})
	}
	p.table([]string{"Suit", "Undealt"}, rows)
}

// RankCounts prints undealt counts per suit and rank, highest rank first.
// Combinations absent from counts are skipped.
func (p *Printer) RankCounts(counts map[string]int) {
	var rows [][]string
	for _, s := range deck.Suits() {
		for r := deck.King; r >= deck.Ace; r-- {
			n, ok := counts[deck.Key(s, r)]
			if !ok {
				continue
			}
			rows = append(rows, []string{s.String(), r.String(), strconv.Itoa(n)})
		}
	}
	if len(rows) == 0 {
		p.println(p.styles.Muted.Render("No undealt cards"))
		return
	}
	p.table([]string{"Suit", "Rank", "Undealt"}, rows)
}

// Simulation prints a simulation summary
func (p *Printer) Simulation(cfg simulator.Config, r *simulator.Result) {
	p.title(fmt.Sprintf("Simulation: %d games, %d deck(s), %d players", r.Games, cfg.Decks, cfg.Players))
	p.field("Cards dealt", strconv.Itoa(r.CardsDealt))
	p.field("Deals", fmt.Sprintf("%d (%d short)", r.Deals, r.ShortDeals))
	win := r.WinningTotal
	lo, hi := win.ConfidenceInterval95()
	p.field("Winning total", fmt.Sprintf("min %d, median %.1f, mean %.1f (95%% CI %.1f to %.1f), max %d",
		win.Min, win.Median(), win.Mean(), lo, hi, win.Max))

	rows := make([][]string, 0, len(r.SeatWins)+1)
	for seat, wins := range r.SeatWins {
		avg := "-"
		if seat < len(r.SeatTotals) {
			avg = strconv.FormatFloat(r.SeatTotals[seat].Mean(), 'f', 1, 64)
		}
		rows = append(rows, []string{strconv.Itoa(seat + 1), strconv.Itoa(wins), percent(wins, r.Games), avg})
	}
	rows = append(rows, []string{"tie", strconv.Itoa(r.Ties), percent(r.Ties, r.Games), ""})
	p.table([]string{"Seat", "Wins", "Share", "Mean hand"}, rows)
}

func percent(n, total int) string {
	if total == 0 {
		return "-"
	}
	return strconv.FormatFloat(100*float64(n)/float64(total), 'f', 1, 64) + "%"
}

// Message prints a one line confirmation
func (p *Printer) Message(format string, args ...any) {
	p.println(p.styles.Success.Render(strings.TrimSpace(fmt.Sprintf(format, args...))))
}
