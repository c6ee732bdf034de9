package gamefactory

import (
	"fmt"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
	"github.com/sirupsen/logrus"
)

var factories = map[string]GameFactory{
	"holm":             holmFactory{},
	"three-five-seven": threeFiveSevenFactory{},
	"cribbage":         cribbageFactory{},
	"horses":           horsesFactory{},
	"yacht":            yachtFactory{},
}

// GameFactory is a factory for creating games that implement the Playable interface
type GameFactory interface {
	CreateGame(logger logrus.FieldLogger, playerIDs []int64, additionalData playable.AdditionalData) (playable.Playable, error)
	Details(additionalData playable.AdditionalData) (name string, ante int, err error)
}

// Get returns a factory by the given name
func Get(name string) (GameFactory, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("no factory with name: %s", name)
	}

	return factory, nil
}
