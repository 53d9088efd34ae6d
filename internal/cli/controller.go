// Package cli implements the interactive terminal front end.
package cli

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/jinsei-game/jinsei/internal/game"
	"github.com/jinsei-game/jinsei/internal/log"
)

// TerminalController implements game.Controller with pterm prompts.
type TerminalController struct {
	// Quiet suppresses per-event output and only renders prompts.
	Quiet bool
}

func optionLabel(c *game.Card) string {
	return c.DisplayString()
}

// lookup maps a selected label back to its card. Labels are unique
// because every card ID is unique and DisplayString includes the name;
// duplicated names get an index suffix.
func buildOptions(cards []*game.Card) ([]string, map[string]*game.Card) {
	options := make([]string, 0, len(cards))
	byLabel := make(map[string]*game.Card, len(cards))
	for i, c := range cards {
		label := optionLabel(c)
		if _, dup := byLabel[label]; dup {
			label = fmt.Sprintf("%s (%d)", label, i+1)
		}
		options = append(options, label)
		byLabel[label] = c
	}
	return options, byLabel
}

func (tc *TerminalController) printStatus(g *game.Game) {
	pterm.DefaultSection.Printf("ターン%d - %s", g.Turn(), g.Stage())
	pterm.Printf("体力 %d/%d  保険料負担 %d/%d  山札 %d枚\n",
		g.Vitality(), g.MaxVitality(), g.InsuranceBurden(), g.MaxInsuranceBurden(), g.DeckCount())
}

// AskCardSelection implements game.Controller.
func (tc *TerminalController) AskCardSelection(ctx context.Context, g *game.Game, prompt string, candidates []*game.Card, min, max int) ([]*game.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tc.printStatus(g)

	options, byLabel := buildOptions(candidates)

	if min == 1 && max == 1 {
		label, err := pterm.DefaultInteractiveSelect.
			WithDefaultText(prompt).
			WithOptions(options).
			Show()
		if err != nil {
			return nil, err
		}
		return []*game.Card{byLabel[label]}, nil
	}

	for {
		labels, err := pterm.DefaultInteractiveMultiselect.
			WithDefaultText(fmt.Sprintf("%s (%d〜%d枚)", prompt, min, max)).
			WithOptions(options).
			Show()
		if err != nil {
			return nil, err
		}
		if len(labels) < min || len(labels) > max {
			pterm.Warning.Printf("%d〜%d枚選択してください\n", min, max)
			continue
		}
		picked := make([]*game.Card, 0, len(labels))
		for _, label := range labels {
			picked = append(picked, byLabel[label])
		}
		return picked, nil
	}
}

// AskChallengeAction implements game.Controller.
func (tc *TerminalController) AskChallengeAction(ctx context.Context, g *game.Game, choices []*game.Card) (*game.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tc.printStatus(g)

	options, byLabel := buildOptions(choices)
	label, err := pterm.DefaultInteractiveSelect.
		WithDefaultText("挑戦するチャレンジを選択してください").
		WithOptions(options).
		Show()
	if err != nil {
		return nil, err
	}
	return byLabel[label], nil
}

// AskInsuranceChoice implements game.Controller.
func (tc *TerminalController) AskInsuranceChoice(ctx context.Context, g *game.Game, offers []*game.Card) (*game.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	const declineLabel = "加入しない"
	options, byLabel := buildOptions(offers)
	options = append(options, declineLabel)

	label, err := pterm.DefaultInteractiveSelect.
		WithDefaultText("保険に加入しますか").
		WithOptions(options).
		Show()
	if err != nil {
		return nil, err
	}
	if label == declineLabel {
		return nil, nil
	}
	return byLabel[label], nil
}

// AskInsuranceRenewalChoice implements game.Controller.
func (tc *TerminalController) AskInsuranceRenewalChoice(ctx context.Context, g *game.Game, policy *game.Card) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return pterm.DefaultInteractiveConfirm.
		WithDefaultText(fmt.Sprintf("「%s」を更新しますか (コスト%d、現在の体力%d)", policy.Name, policy.Cost, g.Vitality())).
		WithDefaultValue(true).
		Show()
}

// Notify implements game.Controller.
func (tc *TerminalController) Notify(ctx context.Context, event log.GameEvent) error {
	if tc.Quiet {
		return nil
	}
	switch event.Type {
	case log.EventChallengeResult:
		pterm.Info.Println(event.Details)
	case log.EventVitalityChange, log.EventBurdenCharged:
		pterm.Printf("  %s\n", event.Details)
	case log.EventInsuranceExpired:
		pterm.Warning.Println(event.Details)
	case log.EventVictory:
		pterm.Success.Println(event.Details)
	case log.EventGameOver:
		pterm.Error.Println(event.Details)
	default:
		pterm.Printf("  %s\n", event.Details)
	}
	return nil
}

// PrintResult renders the final outcome and statistics.
func PrintResult(g *game.Game) {
	stats := g.GameStats()

	if g.Status() == game.StatusVictory {
		pterm.DefaultHeader.WithFullWidth().Println("夢を叶えた!")
	} else {
		pterm.DefaultHeader.WithFullWidth().Println("ゲームオーバー")
	}

	pterm.DefaultTable.WithData(pterm.TableData{
		{"スコア", fmt.Sprintf("%d", stats.Score)},
		{"最終体力", fmt.Sprintf("%d", stats.FinalVitality)},
		{"プレイターン数", fmt.Sprintf("%d", stats.TurnsPlayed)},
		{"チャレンジ成功", fmt.Sprintf("%d/%d", stats.SuccessfulChallenges, stats.TotalChallenges)},
		{"獲得カード", fmt.Sprintf("%d", stats.CardsAcquired)},
	}).Render()
}
