package session

import (
	"github.com/sirupsen/logrus"

	"github.com/adibhanna/coachlix/internal/models"
)

// DefaultRestSeconds applies when an exercise has no rest time configured.
const DefaultRestSeconds = 60

// RestDuration is the configured rest after ex. A zero rest time counts as unset.
func RestDuration(ex models.Exercise) int {
	if ex.RestTime > 0 {
		return ex.RestTime
	}
	return DefaultRestSeconds
}

// RestScheduler counts a rest period down to zero and plays the cue when it
// runs out. It is idle whenever the remaining time is zero.
type RestScheduler struct {
	remaining    int
	cue          Cue
	soundEnabled bool
	log          logrus.FieldLogger
}

func NewRestScheduler(cue Cue, soundEnabled bool, log logrus.FieldLogger) *RestScheduler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RestScheduler{
		cue:          cue,
		soundEnabled: soundEnabled,
		log:          log,
	}
}

func (r *RestScheduler) Start(seconds int) {
	if seconds <= 0 {
		seconds = DefaultRestSeconds
	}
	r.remaining = seconds
}

// Skip ends the rest period early without the cue.
func (r *RestScheduler) Skip() { r.remaining = 0 }

// Tick counts down one second and reports whether the rest period just ended.
func (r *RestScheduler) Tick() bool {
	if r.remaining == 0 {
		return false
	}
	r.remaining--
	if r.remaining > 0 {
		return false
	}
	r.play()
	return true
}

func (r *RestScheduler) play() {
	if !r.soundEnabled || r.cue == nil {
		return
	}
	if err := r.cue.Play(); err != nil {
		r.log.WithError(err).Debug("rest cue unavailable")
	}
}

func (r *RestScheduler) Resting() bool { return r.remaining > 0 }

func (r *RestScheduler) Remaining() int { return r.remaining }

func (r *RestScheduler) SoundEnabled() bool { return r.soundEnabled }

func (r *RestScheduler) SetSoundEnabled(enabled bool) { r.soundEnabled = enabled }
