package jobofferinfra

import (
	"strings"
	"testing"

	"github.com/0Omaaar/iRecruitApp/recruitment/joboffer"
)

func TestBuildAdminFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     joboffer.AdminListQuery
		wantWhere []string
		wantArgs  []any
	}{
		{
			name:  "no filters",
			query: joboffer.AdminListQuery{},
		},
		{
			name:      "title matches every locale",
			query:     joboffer.AdminListQuery{Title: "prof"},
			wantWhere: []string{"title->>'fr' ILIKE $1", "title->>'en' ILIKE $1", "title->>'ar' ILIKE $1"},
			wantArgs:  []any{"%prof%"},
		},
		{
			name:      "filters are anded in order",
			query:     joboffer.AdminListQuery{Title: "prof", Date: "2025-03-01", City: "Rabat", Department: "Info"},
			wantWhere: []string{"date_publication = $2", "city->>'ar' ILIKE $3", "department->>'fr' ILIKE $4", ") AND ("},
			wantArgs:  []any{"%prof%", "2025-03-01", "%Rabat%", "%Info%"},
		},
		{
			name:     "like wildcards are escaped",
			query:    joboffer.AdminListQuery{City: "100%_sure"},
			wantArgs: []any{`%100\%\_sure%`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildAdminFilter(tt.query)
			if len(tt.wantWhere) == 0 && len(tt.wantArgs) == 0 && where != "" {
				t.Fatalf("expected empty where, got %q", where)
			}
			for _, w := range tt.wantWhere {
				if !strings.Contains(where, w) {
					t.Fatalf("expected %q in %q", w, where)
				}
			}
			if tt.wantArgs != nil {
				if len(args) != len(tt.wantArgs) {
					t.Fatalf("expected args %v, got %v", tt.wantArgs, args)
				}
				for i := range args {
					if args[i] != tt.wantArgs[i] {
						t.Fatalf("expected args %v, got %v", tt.wantArgs, args)
					}
				}
			}
		})
	}
}
