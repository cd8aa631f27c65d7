package table

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionFromString(t *testing.T) {
	a := assert.New(t)

	for _, s := range []string{"fold", "check", "call", "bet", "raise"} {
		action, err := ActionFromString(s)
		a.NoError(err)
		a.Equal(Action(s), action)
	}

	_, err := ActionFromString("teleport")
	a.EqualError(err, "unknown action: teleport")
}

func TestAction_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Raise)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"id":"raise","name":"Raise"}`, string(b))
}

func TestAction_LogMessage(t *testing.T) {
	a := assert.New(t)

	a.Equal("folded", Fold.LogMessage(0))
	a.Equal("checked", Check.LogMessage(0))
	a.Equal("called 25", Call.LogMessage(25))
	a.Equal("bet 50", Bet.LogMessage(50))
	a.Equal("raised to 100", Raise.LogMessage(100))
}

func TestStreet_strings(t *testing.T) {
	a := assert.New(t)

	a.Equal("preflop", Preflop.String())
	a.Equal("river", River.String())

	b, err := json.Marshal(Flop)
	a.NoError(err)
	a.Equal(`"flop"`, string(b))

	b, err = json.Marshal(StageHandInProgress)
	a.NoError(err)
	a.Equal(`"hand-in-progress"`, string(b))
}
