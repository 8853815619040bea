package adRepo

import (
	"regexp"

	"forotrix/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	maxLimit     = 50
	defaultLimit = 20
	// Bucket label for ads without a city, kept for frontend compatibility.
	noZoneLabel = "Sin zona"
)

// BuildListQuery translates filters into a MongoDB predicate. The public
// listing always restricts to published ads.
func BuildListQuery(f ListFilters) bson.M {
	query := bson.M{"status": models.AdStatusPublished}

	if len(f.ExcludeIDs) > 0 {
		query["id"] = bson.M{"$nin": f.ExcludeIDs}
	}
	if f.City != "" {
		query["city"] = f.City
	}
	if f.Plan != "" {
		query["plan"] = f.Plan
	}
	if f.Text != "" {
		query["title"] = bson.M{"$regex": regexp.QuoteMeta(f.Text), "$options": "i"}
	}
	if f.ProfileType != "" {
		query["profileType"] = f.ProfileType
	}
	if f.Featured != nil {
		query["highlighted"] = *f.Featured
	}
	if len(f.Services) > 0 {
		// Superset semantics: the ad must offer every requested service.
		query["services"] = bson.M{"$all": f.Services}
	}
	if f.AgeMin > 0 || f.AgeMax > 0 {
		ageQuery := bson.M{}
		if f.AgeMin > 0 {
			ageQuery["$gte"] = f.AgeMin
		}
		if f.AgeMax > 0 {
			ageQuery["$lte"] = f.AgeMax
		}
		query["age"] = ageQuery
	}

	genderClauses := buildGenderClauses(f.Sex, f.Identity)
	if len(genderClauses) > 0 {
		query["$and"] = genderClauses
	}

	return query
}

// buildGenderClauses keeps ads created before gender metadata existed visible:
// female and cis act as implicit defaults for ads with no stored gender, while
// male and trans require an exact stored match.
func buildGenderClauses(sex, identity string) bson.A {
	clauses := bson.A{}
	if sex != "" {
		if sex == models.SexFemale {
			clauses = append(clauses, bson.M{"$or": bson.A{
				bson.M{"metadata.gender.sex": models.SexFemale},
				bson.M{"metadata.gender.sex": bson.M{"$exists": false}},
				bson.M{"metadata.gender": bson.M{"$exists": false}},
				bson.M{"metadata": bson.M{"$exists": false}},
			}})
		} else {
			clauses = append(clauses, bson.M{"metadata.gender.sex": sex})
		}
	}
	if identity != "" {
		if identity == models.IdentityCis {
			clauses = append(clauses, bson.M{"$or": bson.A{
				bson.M{"metadata.gender.identity": models.IdentityCis},
				bson.M{"metadata.gender.identity": bson.M{"$exists": false}},
				bson.M{"metadata.gender": bson.M{"$exists": false}},
				bson.M{"metadata": bson.M{"$exists": false}},
			}})
		} else {
			clauses = append(clauses, bson.M{"metadata.gender.identity": identity})
		}
	}
	return clauses
}

// BuildListSort returns the listing sort order. Weekly listings order by the
// weekly favorites counter; everything else puts premium plans first.
func BuildListSort(weekly bool) bson.D {
	if weekly {
		return bson.D{
			{Key: "metadata.ranking.favoritesWeekly", Value: -1},
			{Key: "createdAt", Value: -1},
		}
	}
	return bson.D{
		{Key: "plan", Value: -1},
		{Key: "createdAt", Value: -1},
	}
}

// BuildCityFacetPipeline aggregates the city distribution over the same
// predicate minus the city filter itself, so the facet always shows the full
// distribution regardless of the currently selected city.
func BuildCityFacetPipeline(f ListFilters) mongo.Pipeline {
	match := BuildListQuery(f)
	delete(match, "city")

	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$ifNull": bson.A{"$city", noZoneLabel}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":   0,
			"city":  "$_id",
			"count": 1,
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "count", Value: -1},
			{Key: "city", Value: 1},
		}}},
	}
}

// ClampPagination bounds page and limit and derives the skip offset. Page
// defaults to 1, limit to 20 with a hard ceiling of 50.
func ClampPagination(page, limit int) (safePage, safeLimit int, skip int64) {
	safePage = page
	if safePage < 1 {
		safePage = 1
	}
	safeLimit = limit
	if safeLimit < 1 {
		safeLimit = defaultLimit
	}
	if safeLimit > maxLimit {
		safeLimit = maxLimit
	}
	skip = int64(safePage-1) * int64(safeLimit)
	return safePage, safeLimit, skip
}

// Pages computes the page count for a total at the given limit.
func Pages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
