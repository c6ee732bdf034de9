package gamefactory

import (
	"time"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable/yacht"
	"github.com/sirupsen/logrus"
)

type yachtFactory struct{}

func (y yachtFactory) CreateGame(logger logrus.FieldLogger, playerIDs []int64, additionalData playable.AdditionalData) (playable.Playable, error) {
	return yacht.NewGame(logger, playerIDs, getYachtOptions(additionalData))
}

func (y yachtFactory) Details(additionalData playable.AdditionalData) (string, int, error) {
	opts := getYachtOptions(additionalData)
	return "Yacht", opts.Ante, nil
}

func getYachtOptions(data playable.AdditionalData) yacht.Options {
	opts := yacht.DefaultOptions()
	if ante, _ := data.GetInt("ante"); ante > 0 {
		opts.Ante = ante
	}

	if timeout, _ := data.GetInt("turnTimeout"); timeout > 0 {
		opts.TurnTimeout = time.Second * time.Duration(timeout)
	}

	return opts
}
