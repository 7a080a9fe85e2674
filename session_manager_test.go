package dolls

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestSessionManager_Add(t *testing.T) {
	mg := &SessionManager{}
	assert.NotPanics(t, func() { mg.Add(nil) })

	sess := newSession(nil, &SessionOption{})

	mg.Add(sess)

	v, ok := mg.Sessions.Load(sess.ID())
	assert.True(t, ok)
	assert.Equal(t, v, sess)
}

func TestSessionManager_Get(t *testing.T) {
	mg := &SessionManager{}
	assert.Nil(t, mg.Get("not found"))

	sess := newSession(nil, &SessionOption{})

	mg.Sessions.Store(sess.ID(), sess)
	s := mg.Get(sess.ID())
	assert.NotNil(t, s)
	assert.Equal(t, s, sess)
}

func TestSessionManager_Range(t *testing.T) {
	mg := &SessionManager{}
	var count int
	mg.Range(func(id string, sess *Session) (next bool) {
		count++
		return true
	})
	assert.Zero(t, count)

	sess := newSession(nil, &SessionOption{})

	mg.Add(sess)
	count = 0
	mg.Range(func(id string, s *Session) (next bool) {
		assert.Equal(t, sess.ID(), id)
		assert.Equal(t, s, sess)
		count++
		return true
	})
	assert.Equal(t, count, 1)
}

func TestSessionManager_Remove(t *testing.T) {
	mg := &SessionManager{}
	assert.NotPanics(t, func() {
		mg.Remove("not found")
	})
	mg.Sessions.Store("test", "test")
	mg.Remove("test")
	_, found := mg.Sessions.Load("test")
	assert.False(t, found)
}

func TestSessionManager_Len(t *testing.T) {
	mg := NewSessionManager()
	assert.Zero(t, mg.Len())

	first := newSession(nil, &SessionOption{})
	second := newSession(nil, &SessionOption{})
	mg.Add(first)
	mg.Add(second)
	assert.Equal(t, 2, mg.Len())

	mg.Remove(first.ID())
	assert.Equal(t, 1, mg.Len())
}
