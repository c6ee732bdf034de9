package gamefactory

import (
	"fmt"
	"time"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable/horses"
	"github.com/sirupsen/logrus"
)

type horsesFactory struct{}

func (h horsesFactory) CreateGame(logger logrus.FieldLogger, playerIDs []int64, additionalData playable.AdditionalData) (playable.Playable, error) {
	return horses.NewGame(logger, playerIDs, getHorsesOptions(additionalData))
}

func (h horsesFactory) Details(additionalData playable.AdditionalData) (string, int, error) {
	opts := getHorsesOptions(additionalData)
	name := "Horses"
	if opts.WildFace > 0 {
		name = fmt.Sprintf("Horses (%ds wild)", opts.WildFace)
	}

	return name, opts.Ante, nil
}

func getHorsesOptions(data playable.AdditionalData) horses.Options {
	opts := horses.DefaultOptions()
	if ante, _ := data.GetInt("ante"); ante > 0 {
		opts.Ante = ante
	}

	if wildFace, ok := data.GetInt("wildFace"); ok && wildFace >= 0 && wildFace <= 6 {
		opts.WildFace = wildFace
	}

	if timeout, _ := data.GetInt("turnTimeout"); timeout > 0 {
		opts.TurnTimeout = time.Second * time.Duration(timeout)
	}

	return opts
}
