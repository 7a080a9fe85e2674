package dolls

import (
	"fmt"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestUnpackError(t *testing.T) {
	err := fmt.Errorf("something fatal")
	ue := &UnpackError{Err: err}
	assert.ErrorIs(t, ue, err)
	assert.Equal(t, err.Error(), ue.Error())
	assert.True(t, ue.Fatal())
}

func TestProcessorError(t *testing.T) {
	err := fmt.Errorf("bad payload")
	pe := &ProcessorError{ID: 7, Err: err}
	assert.ErrorIs(t, pe, err)
	assert.Contains(t, pe.Error(), "id=7")
	assert.False(t, pe.Fatal())
}
