package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"tta-cards/internal/models"
)

// ritmo da revelação
const (
	ShakeDelay  = 520 * time.Millisecond
	DealStagger = 22 * time.Millisecond
	SettleDelay = 220 * time.Millisecond
	FlipDelay   = 90 * time.Millisecond
)

var rarityColors = map[models.CardRarity]*color.Color{
	models.Common:     color.New(color.FgWhite),
	models.Uncommon:   color.New(color.FgGreen),
	models.Rare:       color.New(color.FgCyan),
	models.Legendary:  color.New(color.FgYellow, color.Bold),
	models.UltraXRare: color.New(color.FgHiMagenta, color.Bold),
}

func colorOf(r models.CardRarity) *color.Color {
	if c, ok := rarityColors[r]; ok {
		return c
	}
	return color.New(color.Reset)
}

// Terminal desenha pacotes e coleções como texto
type Terminal struct {
	out  io.Writer
	fast bool
}

// New retorna um Terminal escrevendo em out. Com fast a revelação pula as
// pausas.
func New(out io.Writer, fast bool) *Terminal {
	return &Terminal{out: out, fast: fast}
}

func (t *Terminal) wait(ctx context.Context, d time.Duration) error {
	if t.fast || d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Reveal toca a abertura: tremida, distribui virado pra baixo, assenta e
// vira cada carta em ordem. Serve como usecases.RevealFunc.
func (t *Terminal) Reveal(ctx context.Context, b models.Booster) error {
	fmt.Fprintf(t.out, "Opening pack %s ", b.BID)
	for range 4 {
		fmt.Fprint(t.out, "~")
		if err := t.wait(ctx, ShakeDelay/4); err != nil {
			return err
		}
	}
	fmt.Fprintln(t.out)

	for range b.Booster {
		fmt.Fprint(t.out, "[TTA]")
		if err := t.wait(ctx, DealStagger); err != nil {
			return err
		}
	}
	fmt.Fprintln(t.out)
	if err := t.wait(ctx, SettleDelay); err != nil {
		return err
	}

	width := len(fmt.Sprint(len(b.Booster)))
	for i, c := range b.Booster {
		fmt.Fprintf(t.out, "%*d. ", width, i+1)
		colorOf(c.Rarity).Fprintf(t.out, "%s", c.Name)
		fmt.Fprintf(t.out, " (%s)\n", c.Rarity)
		if err := t.wait(ctx, FlipDelay); err != nil {
			return err
		}
	}
	return nil
}

// PrintSummary escreve uma linha por raridade: total de cópias e cartas únicas
func (t *Terminal) PrintSummary(rows []models.TierSummary) {
	for _, row := range rows {
		colorOf(row.Rarity).Fprintf(t.out, "%-13s", row.Rarity)
		fmt.Fprintf(t.out, " %5d   %d unique\n", row.Total, row.Unique)
	}
}

// PrintList escreve a listagem com a pílula ×count por carta
func (t *Terminal) PrintList(entries []models.ListEntry) {
	if len(entries) == 0 {
		color.New(color.Faint).Fprintln(t.out, "No cards match.")
		return
	}
	for _, e := range entries {
		pill := fmt.Sprintf("×%d", e.Count)
		if e.Count == 0 {
			color.New(color.Faint).Fprintf(t.out, "%5s ", pill)
		} else {
			fmt.Fprintf(t.out, "%5s ", pill)
		}
		colorOf(e.Card.Rarity).Fprintln(t.out, e.Card.Name)
	}
}

// Confirm pergunta sim/não em out e lê a resposta de in.
// Qualquer coisa fora y ou yes é não.
func (t *Terminal) Confirm(in io.Reader, question string) bool {
	fmt.Fprintf(t.out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
