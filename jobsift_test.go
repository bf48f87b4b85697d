package jobsift_test

import (
	"testing"

	"github.com/jobsift/jobsift"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := jobsift.Errorf(jobsift.ENOTFOUND, "job %q not found", "test")

	assert.Equal(t, jobsift.ENOTFOUND, jobsift.ErrorCode(err))
	assert.Equal(t, "job \"test\" not found", jobsift.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, jobsift.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, jobsift.ErrorMessage(nil))
}

func TestJobRow_Validate(t *testing.T) {
	t.Parallel()

	t.Run("MissingURL", func(t *testing.T) {
		t.Parallel()
		row := &jobsift.JobRow{Title: "Software Engineer"}
		assert.Equal(t, jobsift.EINVALID, jobsift.ErrorCode(row.Validate()))
	})

	t.Run("MissingTitle", func(t *testing.T) {
		t.Parallel()
		row := &jobsift.JobRow{JobURL: "https://example.com/jobs/1"}
		assert.Equal(t, jobsift.EINVALID, jobsift.ErrorCode(row.Validate()))
	})

	t.Run("OK", func(t *testing.T) {
		t.Parallel()
		row := &jobsift.JobRow{JobURL: "https://example.com/jobs/1", Title: "Software Engineer"}
		assert.NoError(t, row.Validate())
	})
}
