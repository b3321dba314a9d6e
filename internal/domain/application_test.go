package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{"submitted to under-review", StatusSubmitted, StatusUnderReview, true},
		{"submitted to rejected", StatusSubmitted, StatusRejected, true},
		{"submitted to withdrawn", StatusSubmitted, StatusWithdrawn, true},
		{"submitted cannot skip to shortlisted", StatusSubmitted, StatusShortlisted, false},
		{"submitted cannot skip to selected", StatusSubmitted, StatusSelected, false},
		{"under-review to shortlisted", StatusUnderReview, StatusShortlisted, true},
		{"under-review cannot go back", StatusUnderReview, StatusSubmitted, false},
		{"shortlisted to interview-scheduled", StatusShortlisted, StatusInterviewScheduled, true},
		{"interview-scheduled to interviewed", StatusInterviewScheduled, StatusInterviewed, true},
		{"interviewed to selected", StatusInterviewed, StatusSelected, true},
		{"interviewed to rejected", StatusInterviewed, StatusRejected, true},
		{"rejected is terminal", StatusRejected, StatusUnderReview, false},
		{"selected is terminal", StatusSelected, StatusRejected, false},
		{"withdrawn is terminal", StatusWithdrawn, StatusSubmitted, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to))
		})
	}
}

func TestCanTransition_EveryStateCanBeWithdrawnOrIsTerminal(t *testing.T) {
	active := []ApplicationStatus{
		StatusSubmitted, StatusUnderReview, StatusShortlisted,
		StatusInterviewScheduled, StatusInterviewed,
	}
	for _, status := range active {
		assert.True(t, CanTransition(status, StatusWithdrawn), "status %s should allow withdrawal", status)
		assert.True(t, CanTransition(status, StatusRejected), "status %s should allow rejection", status)
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusSubmitted))
	assert.True(t, ValidStatus(StatusWithdrawn))
	assert.False(t, ValidStatus("pending"))
	assert.False(t, ValidStatus(""))
}

func TestValidCandidateExperience(t *testing.T) {
	assert.True(t, ValidCandidateExperience(CandidateFresher))
	assert.True(t, ValidCandidateExperience(CandidateOneThree))
	assert.True(t, ValidCandidateExperience(CandidateTenPlus))
	// legacy posting-level labels still accepted
	assert.True(t, ValidCandidateExperience(CandidateExperience(ExperienceEntry)))
	assert.True(t, ValidCandidateExperience(CandidateExperience(ExperienceExecutive)))
	assert.False(t, ValidCandidateExperience("20+"))
	assert.False(t, ValidCandidateExperience(""))
}
