package models

import (
	"testing"
	"time"

	"fab-progress/internal/progress"

	"github.com/stretchr/testify/assert"
)

func TestProject_Resolve(t *testing.T) {
	p := Project{StatusText: "製作中", PipeSupport: "2/1", NDE: "2/9"}
	res := p.Resolve()

	assert.Equal(t, "40%", p.Completion)
	assert.Equal(t, progress.CategoryInProgress, p.StatusCategory)
	assert.True(t, p.CategoryInferred)
	assert.Equal(t, 40, res.Percent)
}

func TestProject_ForgetInferred(t *testing.T) {
	p := Project{StatusText: "製作中"}
	p.Resolve()

	p.StatusText = "停工"
	p.ForgetInferred()
	p.Resolve()
	assert.Equal(t, progress.CategorySuspended, p.StatusCategory)

	p = Project{StatusText: "製作中", StatusCategory: progress.CategoryPending}
	p.Resolve()
	p.ForgetInferred()
	assert.Equal(t, progress.CategoryPending, p.StatusCategory)
}

func TestProject_StageField(t *testing.T) {
	var p Project
	for _, s := range progress.Stages {
		f := p.StageField(s)
		if assert.NotNil(t, f, s) {
			*f = string(s)
		}
	}
	for s, v := range p.StageDates() {
		assert.Equal(t, string(s), v)
	}
	assert.Nil(t, p.StageField("polishing"))
}

func TestProject_Touched(t *testing.T) {
	now := time.Date(2026, time.October, 22, 10, 0, 0, 0, time.UTC)
	p := Project{}
	p.UpdatedAt = time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC)
	assert.True(t, p.Touched(now))

	p.UpdatedAt = time.Date(2026, time.October, 18, 23, 0, 0, 0, time.UTC)
	assert.False(t, p.Touched(now))
}
