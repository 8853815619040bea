package userRepo

import (
	"testing"
	"time"

	"forotrix/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestUpdateDocumentSetsPresentFields(t *testing.T) {
	user := &models.User{
		ID: "user-1", Email: "marina@example.com", Password: "hash",
		Role: models.RoleProvider, Name: "Marina",
		RefreshTokenHash: "stored-hash",
		Contacts:         &models.ContactChannels{Whatsapp: "+34600111222"},
		AvatarURL:        "https://cdn/avatar", AvatarPublicID: "avatar-1",
		UpdatedAt: time.Now().UTC(),
	}

	update := updateDocument(user)
	set := update["$set"].(bson.M)

	for _, key := range []string{"name", "refreshTokenHash", "contacts", "avatarUrl", "avatarPublicId"} {
		if _, ok := set[key]; !ok {
			t.Errorf("$set missing %q", key)
		}
	}
	if _, ok := update["$unset"]; ok {
		t.Errorf("unexpected $unset for fully populated user: %v", update["$unset"])
	}
}

// Logout clears RefreshTokenHash; the update must $unset it or the stored
// session hash survives and a logged-out refresh token keeps working.
func TestUpdateDocumentUnsetsClearedFields(t *testing.T) {
	user := &models.User{
		ID: "user-1", Email: "marina@example.com", Password: "hash",
		Role:      models.RoleProvider,
		UpdatedAt: time.Now().UTC(),
	}

	update := updateDocument(user)
	set := update["$set"].(bson.M)
	unset, ok := update["$unset"].(bson.M)
	if !ok {
		t.Fatal("missing $unset for cleared optional fields")
	}

	if _, ok := unset["refreshTokenHash"]; !ok {
		t.Error("$unset missing refreshTokenHash")
	}
	for _, key := range []string{"name", "contacts", "avatarUrl", "avatarPublicId"} {
		if _, ok := unset[key]; !ok {
			t.Errorf("$unset missing %q", key)
		}
	}
	for key := range unset {
		if _, alsoSet := set[key]; alsoSet {
			t.Errorf("field %q present in both $set and $unset", key)
		}
	}
}
