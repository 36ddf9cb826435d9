package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageQueryNormalize(t *testing.T) {
	tests := []struct {
		name     string
		query    PageQuery
		wantPage int
		wantSize int
	}{
		{"默认值", PageQuery{}, 0, 10},
		{"显式分页", PageQuery{Page: 2, Size: 20}, 2, 20},
		{"负页码归零", PageQuery{Page: -1, Size: 5}, 0, 5},
		{"超上限截断", PageQuery{Size: 500}, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size := tt.query.Normalize()
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestPageQuerySortParams(t *testing.T) {
	tests := []struct {
		name    string
		sort    string
		wantBy  string
		wantDir string
	}{
		{"空sort", "", "", "asc"},
		{"只有字段", "name", "name", "asc"},
		{"降序", "name,desc", "name", "desc"},
		{"升序显式", "price,asc", "price", "asc"},
		{"非法方向按升序", "price,sideways", "price", "asc"},
		{"方向大小写不敏感", "id,DESC", "id", "desc"},
		{"带空格", " id , desc ", "id", "desc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sortBy, sortDir := PageQuery{Sort: tt.sort}.SortParams()
			assert.Equal(t, tt.wantBy, sortBy)
			assert.Equal(t, tt.wantDir, sortDir)
		})
	}
}
