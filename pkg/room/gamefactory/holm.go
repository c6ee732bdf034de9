package gamefactory

import (
	"fmt"
	"time"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable/holm"
	"github.com/sirupsen/logrus"
)

type holmFactory struct{}

func (h holmFactory) CreateGame(logger logrus.FieldLogger, playerIDs []int64, additionalData playable.AdditionalData) (playable.Playable, error) {
	game, err := holm.NewGame(logger, playerIDs, getHolmOptions(additionalData))
	if err != nil {
		return nil, err
	}

	if err := game.Deal(); err != nil {
		return nil, err
	}

	return game, nil
}

func (h holmFactory) Details(additionalData playable.AdditionalData) (string, int, error) {
	opts := getHolmOptions(additionalData)
	name := "Holm"
	if opts.PotMaxEnabled {
		name = fmt.Sprintf("Holm (pot max ${%d})", opts.PotMax)
	}

	return name, opts.Ante, nil
}

func getHolmOptions(data playable.AdditionalData) holm.Options {
	opts := holm.DefaultOptions()
	if ante, _ := data.GetInt("ante"); ante > 0 {
		opts.Ante = ante
	}

	if potMax, ok := data.GetInt("potMax"); ok {
		opts.PotMax = potMax
		opts.PotMaxEnabled = potMax > 0
	}

	if tax, ok := data.GetInt("tax"); ok {
		opts.Tax = tax
		opts.TaxEnabled = tax > 0
	}

	if ghostCards, _ := data.GetInt("ghostCards"); ghostCards > 0 {
		opts.GhostCardCount = ghostCards
	}

	if timeout, _ := data.GetInt("decisionTimeout"); timeout > 0 {
		opts.DecisionTimeout = time.Second * time.Duration(timeout)
	}

	return opts
}
