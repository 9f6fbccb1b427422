package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff(t *testing.T) {
	b := NewBackoff(time.Second, 10*time.Second)

	var got []time.Duration
	for i := 0; i < 6; i++ {
		got = append(got, b.Failure())
	}
	assert.Equal(t, []time.Duration{
		time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second, 10 * time.Second, 10 * time.Second,
	}, got)

	b.Success()
	assert.Equal(t, time.Second, b.Failure())
}
