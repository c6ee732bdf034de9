package gamefactory

import (
	"fmt"
	"time"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable/threefiveseven"
	"github.com/sirupsen/logrus"
)

type threeFiveSevenFactory struct{}

func (t threeFiveSevenFactory) CreateGame(logger logrus.FieldLogger, playerIDs []int64, additionalData playable.AdditionalData) (playable.Playable, error) {
	game, err := threefiveseven.NewGame(logger, playerIDs, getThreeFiveSevenOptions(additionalData))
	if err != nil {
		return nil, err
	}

	if err := game.Deal(); err != nil {
		return nil, err
	}

	return game, nil
}

func (t threeFiveSevenFactory) Details(additionalData playable.AdditionalData) (string, int, error) {
	opts := getThreeFiveSevenOptions(additionalData)
	return fmt.Sprintf("3-5-7 (%d legs)", opts.LegsToWin), opts.Ante, nil
}

func getThreeFiveSevenOptions(data playable.AdditionalData) threefiveseven.Options {
	opts := threefiveseven.DefaultOptions()
	if ante, _ := data.GetInt("ante"); ante > 0 {
		opts.Ante = ante
	}

	if legValue, _ := data.GetInt("legValue"); legValue > 0 {
		opts.LegValue = legValue
	}

	if legs, _ := data.GetInt("legsToWin"); legs > 0 {
		opts.LegsToWin = legs
	}

	if potMax, ok := data.GetInt("potMax"); ok {
		opts.PotMax = potMax
		opts.PotMaxEnabled = potMax > 0
	}

	if tax, ok := data.GetInt("tax"); ok {
		opts.Tax = tax
		opts.TaxEnabled = tax > 0
	}

	if timeout, _ := data.GetInt("decisionTimeout"); timeout > 0 {
		opts.DecisionTimeout = time.Second * time.Duration(timeout)
	}

	return opts
}
