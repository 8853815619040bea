package adRepo

import (
	"reflect"
	"testing"

	"forotrix/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildListQueryAlwaysPublished(t *testing.T) {
	query := BuildListQuery(ListFilters{})
	if query["status"] != models.AdStatusPublished {
		t.Fatalf("status = %v, want published", query["status"])
	}
	if len(query) != 1 {
		t.Fatalf("empty filters produced extra clauses: %v", query)
	}
}

func TestBuildListQueryScalarFilters(t *testing.T) {
	featured := true
	query := BuildListQuery(ListFilters{
		City:        "Barcelona",
		Plan:        models.PlanPremium,
		ProfileType: models.ProfileTypeChicas,
		Featured:    &featured,
		Services:    []string{"gfe", "companionship"},
		ExcludeIDs:  []string{"a", "b"},
	})

	if query["city"] != "Barcelona" {
		t.Errorf("city = %v", query["city"])
	}
	if query["plan"] != models.PlanPremium {
		t.Errorf("plan = %v", query["plan"])
	}
	if query["profileType"] != models.ProfileTypeChicas {
		t.Errorf("profileType = %v", query["profileType"])
	}
	if query["highlighted"] != true {
		t.Errorf("highlighted = %v", query["highlighted"])
	}
	if !reflect.DeepEqual(query["services"], bson.M{"$all": []string{"gfe", "companionship"}}) {
		t.Errorf("services = %v, want $all clause", query["services"])
	}
	if !reflect.DeepEqual(query["id"], bson.M{"$nin": []string{"a", "b"}}) {
		t.Errorf("id = %v, want $nin clause", query["id"])
	}
}

func TestBuildListQueryTextEscapesRegex(t *testing.T) {
	query := BuildListQuery(ListFilters{Text: "a+b (c)"})
	title, ok := query["title"].(bson.M)
	if !ok {
		t.Fatalf("title = %v", query["title"])
	}
	if title["$regex"] != `a\+b \(c\)` {
		t.Errorf("regex = %v, want metacharacters escaped", title["$regex"])
	}
	if title["$options"] != "i" {
		t.Errorf("options = %v, want case-insensitive", title["$options"])
	}
}

func TestBuildListQueryAgeRange(t *testing.T) {
	query := BuildListQuery(ListFilters{AgeMin: 21, AgeMax: 35})
	if !reflect.DeepEqual(query["age"], bson.M{"$gte": 21, "$lte": 35}) {
		t.Errorf("age = %v", query["age"])
	}

	query = BuildListQuery(ListFilters{AgeMin: 21})
	if !reflect.DeepEqual(query["age"], bson.M{"$gte": 21}) {
		t.Errorf("age min only = %v", query["age"])
	}
}

func TestBuildListQueryGenderImplicitDefaults(t *testing.T) {
	// female and cis must also match ads that predate gender metadata.
	query := BuildListQuery(ListFilters{Sex: models.SexFemale, Identity: models.IdentityCis})
	clauses, ok := query["$and"].(bson.A)
	if !ok || len(clauses) != 2 {
		t.Fatalf("$and = %v, want two clauses", query["$and"])
	}
	for i, clause := range clauses {
		m, ok := clause.(bson.M)
		if !ok {
			t.Fatalf("clause %d = %v", i, clause)
		}
		or, ok := m["$or"].(bson.A)
		if !ok || len(or) != 4 {
			t.Fatalf("clause %d = %v, want $or with missing-metadata fallbacks", i, clause)
		}
	}

	// male and trans require an exact stored match.
	query = BuildListQuery(ListFilters{Sex: models.SexMale, Identity: models.IdentityTrans})
	clauses, _ = query["$and"].(bson.A)
	if len(clauses) != 2 {
		t.Fatalf("$and = %v", query["$and"])
	}
	if !reflect.DeepEqual(clauses[0], bson.M{"metadata.gender.sex": models.SexMale}) {
		t.Errorf("sex clause = %v", clauses[0])
	}
	if !reflect.DeepEqual(clauses[1], bson.M{"metadata.gender.identity": models.IdentityTrans}) {
		t.Errorf("identity clause = %v", clauses[1])
	}

	// No gender filters, no $and key at all.
	query = BuildListQuery(ListFilters{})
	if _, ok := query["$and"]; ok {
		t.Errorf("unexpected $and: %v", query)
	}
}

func TestBuildListSort(t *testing.T) {
	def := BuildListSort(false)
	if def[0].Key != "plan" || def[0].Value != -1 {
		t.Errorf("default sort = %v, want plan desc first", def)
	}
	if def[1].Key != "createdAt" {
		t.Errorf("default sort = %v, want createdAt second", def)
	}

	weekly := BuildListSort(true)
	if weekly[0].Key != "metadata.ranking.favoritesWeekly" || weekly[0].Value != -1 {
		t.Errorf("weekly sort = %v", weekly)
	}
}

func TestBuildCityFacetPipelineDropsCityFilter(t *testing.T) {
	pipeline := BuildCityFacetPipeline(ListFilters{City: "Madrid", Plan: models.PlanPremium})
	match, ok := pipeline[0][0].Value.(bson.M)
	if !ok {
		t.Fatalf("first stage = %v", pipeline[0])
	}
	if _, ok := match["city"]; ok {
		t.Error("facet match must not keep the city filter")
	}
	if match["plan"] != models.PlanPremium {
		t.Errorf("facet match lost other filters: %v", match)
	}
}

func TestClampPagination(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
		wantSkip            int64
	}{
		{0, 0, 1, 20, 0},
		{-5, -1, 1, 20, 0},
		{1, 10, 1, 10, 0},
		{3, 10, 3, 10, 20},
		{2, 500, 2, 50, 50},
	}
	for _, tc := range cases {
		page, limit, skip := ClampPagination(tc.page, tc.limit)
		if page != tc.wantPage || limit != tc.wantLimit || skip != tc.wantSkip {
			t.Errorf("ClampPagination(%d, %d) = (%d, %d, %d), want (%d, %d, %d)",
				tc.page, tc.limit, page, limit, skip, tc.wantPage, tc.wantLimit, tc.wantSkip)
		}
	}
}

func TestPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 20, 5},
	}
	for _, tc := range cases {
		if got := Pages(tc.total, tc.limit); got != tc.want {
			t.Errorf("Pages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}
