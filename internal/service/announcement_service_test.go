package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
)

func TestMergeCourseIDs(t *testing.T) {
	merged := mergeCourseIDs([]int64{3, 1}, []int64{1, 2}, nil, []int64{3})
	assert.Equal(t, []int64{3, 1, 2}, merged)

	assert.Empty(t, mergeCourseIDs())
	assert.Empty(t, mergeCourseIDs(nil, nil))
}

func TestCourseIDsOf(t *testing.T) {
	courses := []*model.Course{{ID: 5}, {ID: 9}}
	assert.Equal(t, []int64{5, 9}, courseIDsOf(courses))
	assert.Empty(t, courseIDsOf(nil))
}
