package adRepo

import (
	"testing"
	"time"

	"forotrix/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestUpdateDocumentSetsPresentFields(t *testing.T) {
	ad := &models.Ad{
		ID: "ad-1", Owner: "owner-1", Title: "Marina", Description: "desc",
		City: "Barcelona", Age: 24, PriceFrom: 120, PriceTo: 220,
		ProfileType: models.ProfileTypeChicas,
		Status:      models.AdStatusPublished, Plan: models.PlanPremium,
		Metadata:  &models.AdMetadata{Gender: &models.GenderInfo{Sex: models.SexFemale, Identity: models.IdentityCis}},
		UpdatedAt: time.Now().UTC(),
	}

	update := updateDocument(ad)
	set := update["$set"].(bson.M)

	for _, key := range []string{"city", "age", "priceFrom", "priceTo", "profileType", "metadata"} {
		if _, ok := set[key]; !ok {
			t.Errorf("$set missing %q", key)
		}
	}
	if _, ok := update["$unset"]; ok {
		t.Errorf("unexpected $unset for fully populated ad: %v", update["$unset"])
	}
	if _, ok := set["id"]; ok {
		t.Error("update must not rewrite the id")
	}
	if _, ok := set["createdAt"]; ok {
		t.Error("update must not rewrite createdAt")
	}
}

// Cleared optional fields must reach the database as $unset; the omitempty
// bson tags would otherwise drop them from a marshaled struct and the old
// values would survive the update.
func TestUpdateDocumentUnsetsClearedFields(t *testing.T) {
	ad := &models.Ad{
		ID: "ad-1", Owner: "owner-1", Title: "Marina", Description: "desc",
		Status: models.AdStatusDraft, Plan: models.PlanBasic,
		UpdatedAt: time.Now().UTC(),
	}

	update := updateDocument(ad)
	set := update["$set"].(bson.M)
	unset, ok := update["$unset"].(bson.M)
	if !ok {
		t.Fatal("missing $unset for cleared optional fields")
	}

	for _, key := range []string{"city", "age", "priceFrom", "priceTo", "profileType", "metadata"} {
		if _, ok := unset[key]; !ok {
			t.Errorf("$unset missing %q", key)
		}
		if _, ok := set[key]; ok {
			t.Errorf("cleared field %q still present in $set", key)
		}
	}
}
