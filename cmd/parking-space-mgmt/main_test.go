package main

import (
	"testing"

	"github.com/matryer/is"
)

func TestRegisterJobsWithDefaultFlags(t *testing.T) {
	is := is.New(t)

	jobs, err := registerJobs(defaultFlags(), nil, nil, nil)
	is.NoErr(err)
	is.True(jobs != nil)
}

func TestRegisterJobsRejectsBadUnseenTimeout(t *testing.T) {
	is := is.New(t)

	flags := defaultFlags()
	flags[deviceUnseenTimeout] = "not-a-duration"

	_, err := registerJobs(flags, nil, nil, nil)
	is.True(err != nil)
}

func TestRegisterJobsRejectsBadRetention(t *testing.T) {
	is := is.New(t)

	flags := defaultFlags()
	flags[readingRetention] = "90 days"

	_, err := registerJobs(flags, nil, nil, nil)
	is.True(err != nil)
}
