package gamefactory

import (
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable/cribbage"
	"github.com/sirupsen/logrus"
)

type cribbageFactory struct{}

func (c cribbageFactory) CreateGame(logger logrus.FieldLogger, playerIDs []int64, additionalData playable.AdditionalData) (playable.Playable, error) {
	return cribbage.NewGame(logger, playerIDs, getCribbageOptions(additionalData))
}

func (c cribbageFactory) Details(additionalData playable.AdditionalData) (string, int, error) {
	opts := getCribbageOptions(additionalData)
	return "Cribbage", opts.Ante, nil
}

func getCribbageOptions(data playable.AdditionalData) cribbage.Options {
	opts := cribbage.DefaultOptions()
	if ante, _ := data.GetInt("ante"); ante > 0 {
		opts.Ante = ante
	}

	if legValue, _ := data.GetInt("legValue"); legValue > 0 {
		opts.LegValue = legValue
	}

	return opts
}
