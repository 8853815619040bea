package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"forotrix/config"
	"forotrix/database"
	"forotrix/models"
	"forotrix/services/ad"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the database with the four sample ads plus randomized mock listings.
// Wipes ads, users and media first. Run with the same env as the API server.

const (
	seedOwnerEmail = "seed@forotrix.com"
	seedPassword   = "Seed1234!"
	mockAdCount    = 100
)

var cities = []string{"Barcelona", "Madrid", "Valencia", "Sevilla", "Bilbao", "Málaga", "Alicante", "Zaragoza"}

var tagPool = []string{
	"Rubia", "Morena", "Pelirroja", "Ojos Azules", "Ojos Verdes", "Tatuajes",
	"Piercing", "Natural", "Operada", "Delgada", "Curvy", "Alta", "Bajita",
}

var weekDays = []string{
	models.Monday, models.Tuesday, models.Wednesday, models.Thursday,
	models.Friday, models.Saturday, models.Sunday,
}

var firstNames = map[string][]string{
	models.SexFemale: {"Lucía", "Carla", "Sofía", "Paula", "Noa", "Alba", "Vera", "Irene", "Daniela", "Claudia"},
	models.SexMale:   {"Hugo", "Mario", "Adrián", "Iker", "Pablo", "Leo", "Marcos", "Dani", "Álvaro", "Sergio"},
}

var lastNames = []string{"García", "Martín", "López", "Navarro", "Serrano", "Vidal", "Romero", "Ortega"}

var adjectives = []string{"exclusiva", "discreta", "premium", "natural", "elegante", "cercana", "independiente"}

var descriptionLines = []string{
	"Atención personalizada en un espacio tranquilo y discreto.",
	"Disponible para encuentros, cenas y viajes con total confidencialidad.",
	"Cada sesión se adapta a lo que buscas, sin prisas y con cercanía.",
	"Trato agradable y ambiente cuidado en pleno centro de la ciudad.",
	"Reserva con antelación para asegurar disponibilidad el mismo día.",
}

type seedImage struct {
	publicID string
	width    int
	height   int
}

// Existing Cloudinary assets, reused so seeded ads render real images.
var cloudinaryImages = []seedImage{
	{publicID: "marina-hero.svg", width: 900, height: 1200},
	{publicID: "valentina-hero.svg", width: 1024, height: 1536},
	{publicID: "kiara-hero.svg", width: 900, height: 1200},
}

type sampleAd struct {
	title       string
	description string
	city        string
	services    []string
	tags        []string
	age         int
	priceFrom   float64
	priceTo     float64
	plan        string
	gender      models.GenderInfo
	highlighted bool
	images      []seedImage
}

var sampleAds = []sampleAd{
	{
		title:       "Marina",
		description: "Acompañamiento exclusivo, masajes eróticos y experiencias a medida en Barcelona. Marina cuida cada detalle para que vivas un encuentro inolvidable.",
		city:        "Barcelona",
		services:    []string{"erotic-massage", "companionship", "gfe", "body-to-body", "shower-together"},
		tags:        []string{"masaje", "latina", "premium"},
		age:         24,
		priceFrom:   120,
		priceTo:     220,
		plan:        models.PlanPremium,
		gender:      models.GenderInfo{Sex: models.SexFemale, Identity: models.IdentityCis},
		highlighted: true,
		images:      []seedImage{cloudinaryImages[0]},
	},
	{
		title:       "Valentina",
		description: "Sesiones privadas de tantra relajante, rituales sensoriales y acompañamiento mindful en Madrid. Ideal para desconectar del ritmo urbano.",
		city:        "Madrid",
		services:    []string{"erotic-massage", "videocall", "domination", "fetish-session", "submission"},
		tags:        []string{"tantra", "wellness", "mindfulness"},
		age:         29,
		priceFrom:   90,
		priceTo:     150,
		plan:        models.PlanBasic,
		gender:      models.GenderInfo{Sex: models.SexFemale, Identity: models.IdentityTrans},
		highlighted: false,
		images:      []seedImage{cloudinaryImages[1]},
	},
	{
		title:       "Bruno",
		description: "Bruno ofrece encuentros discretos y experiencias premium en Valencia. Disponible para viajes y eventos corporativos.",
		city:        "Valencia",
		services:    []string{"romantic-date", "companionship", "gfe", "personal-training", "active-role", "power-exchange"},
		tags:        []string{"viajes", "lujo", "discreción"},
		age:         30,
		priceFrom:   140,
		priceTo:     280,
		plan:        models.PlanPremium,
		gender:      models.GenderInfo{Sex: models.SexMale, Identity: models.IdentityCis},
		highlighted: true,
		images:      []seedImage{cloudinaryImages[2]},
	},
	{
		title:       "Nico",
		description: "Nico combina carisma y discreción para encuentros únicos en Barcelona. Disponible para cenas, viajes y planes especiales.",
		city:        "Barcelona",
		services:    []string{"companionship", "gfe", "videocall", "versatile-role", "attends-men", "attends-couple-mm"},
		tags:        []string{"discreción", "viajes", "premium"},
		age:         28,
		priceFrom:   110,
		priceTo:     210,
		plan:        models.PlanBasic,
		gender:      models.GenderInfo{Sex: models.SexMale, Identity: models.IdentityTrans},
		highlighted: false,
		images:      []seedImage{cloudinaryImages[0]},
	},
}

func main() {
	config.LoadConfig()
	database.InitDB()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	adColl := database.Collection("ads")
	userColl := database.Collection("users")
	mediaColl := database.Collection("media")

	for name, coll := range map[string]*mongo.Collection{"ads": adColl, "users": userColl, "media": mediaColl} {
		if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("failed to clear %s collection: %v", name, err)
		}
	}

	rand.Seed(time.Now().UnixNano())
	seedBatch := "seed-" + time.Now().UTC().Format("2006-01-02")

	var userDocs []interface{}
	var adDocs []interface{}
	var mediaDocs []interface{}

	owner := newSeedUser(seedOwnerEmail, "Seed Provider")
	userDocs = append(userDocs, owner)

	for _, sample := range sampleAds {
		splitDay := ""
		if sample.title == "Marina" {
			splitDay = models.Wednesday
		}
		boost, favorites := 35.0, int64(randomInt(10, 120))
		if sample.highlighted {
			boost, favorites = 95.0, int64(randomInt(60, 220))
		}
		a := buildAd(owner.ID, seedBatch, seedOwnerEmail, sample, splitDay, boost, favorites, randomInt(0, 7))
		for _, img := range sample.images {
			m := buildMedia(owner.ID, a.ID, img)
			a.Images = append(a.Images, m.ID)
			mediaDocs = append(mediaDocs, m)
		}
		adDocs = append(adDocs, a)
	}

	for i := 0; i < mockAdCount; i++ {
		uniqueID := i + 1
		gender := rollGender()
		email := fmt.Sprintf("provider%d@example.com", uniqueID)
		name := randomItem(firstNames[gender.Sex])
		provider := newSeedUser(email, name+" "+randomItem(lastNames))
		userDocs = append(userDocs, provider)

		city := randomItem(cities)
		plan := models.PlanBasic
		if rand.Float64() > 0.8 {
			plan = models.PlanPremium
		}
		highlighted := plan == models.PlanPremium && rand.Float64() > 0.5

		boost := float64(randomInt(0, 20))
		if highlighted {
			boost = float64(randomInt(70, 100))
		} else if plan == models.PlanPremium {
			boost = float64(randomInt(20, 60))
		}
		favorites := int64(randomInt(0, 120))
		if highlighted {
			favorites = int64(randomInt(20, 240))
		}

		splitDay := ""
		if i == 0 {
			splitDay = models.Wednesday
		}

		sample := sampleAd{
			title:       fmt.Sprintf("%s, %s en %s", name, randomItem(adjectives), city),
			description: randomDescription(),
			city:        city,
			services:    randomSubset(serviceIDs(), 3, 6),
			tags:        randomSubset(tagPool, 2, 5),
			age:         randomInt(18, 45),
			priceFrom:   float64(randomInt(50, 150)),
			priceTo:     float64(randomInt(150, 300)),
			plan:        plan,
			gender:      gender,
			highlighted: highlighted,
			images:      randomImages(),
		}
		a := buildAd(provider.ID, seedBatch, email, sample, splitDay, boost, favorites, randomInt(0, 21))
		for _, img := range sample.images {
			m := buildMedia(provider.ID, a.ID, img)
			a.Images = append(a.Images, m.ID)
			mediaDocs = append(mediaDocs, m)
		}
		adDocs = append(adDocs, a)
	}

	if _, err := userColl.InsertMany(ctx, userDocs); err != nil {
		log.Fatalf("failed to insert users: %v", err)
	}
	if _, err := adColl.InsertMany(ctx, adDocs); err != nil {
		log.Fatalf("failed to insert ads: %v", err)
	}
	if _, err := mediaColl.InsertMany(ctx, mediaDocs); err != nil {
		log.Fatalf("failed to insert media: %v", err)
	}

	log.Printf("seeded %d users, %d ads (%d samples, %d mocks), %d media rows, batch %s",
		len(userDocs), len(adDocs), len(sampleAds), mockAdCount, len(mediaDocs), seedBatch)
}

func newSeedUser(email, name string) models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}
	now := time.Now().UTC()
	return models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  string(hash),
		Role:      models.RoleProvider,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func buildAd(ownerID, seedBatch, ownerEmail string, sample sampleAd, splitDay string, boost float64, favorites int64, lastActiveDaysAgo int) models.Ad {
	now := time.Now().UTC()
	profileType := ""
	if sample.gender.Sex == models.SexFemale {
		profileType = models.ProfileTypeChicas
		if sample.gender.Identity == models.IdentityTrans {
			profileType = models.ProfileTypeTrans
		}
	}
	gender := sample.gender
	return models.Ad{
		ID:          uuid.NewString(),
		Owner:       ownerID,
		Title:       capitalize(ad.NormalizeTitle(sample.title)),
		Description: sample.description,
		City:        sample.city,
		Services:    sample.services,
		Tags:        sample.tags,
		Age:         sample.age,
		PriceFrom:   sample.priceFrom,
		PriceTo:     sample.priceTo,
		ProfileType: profileType,
		Highlighted: sample.highlighted,
		Images:      []string{},
		Status:      models.AdStatusPublished,
		Plan:        sample.plan,
		Metadata: &models.AdMetadata{
			Seed:         &models.SeedInfo{SeedBatch: seedBatch, IsMock: true},
			Gender:       &gender,
			Contacts:     buildContacts(),
			Location:     buildLocation(sample.city),
			Availability: buildAvailability(splitDay),
			Ranking: &models.RankingHints{
				BoostFeatured:   boost,
				FavoritesWeekly: favorites,
				LastActiveAt:    now.Add(-time.Duration(lastActiveDaysAgo) * 24 * time.Hour).Format(time.RFC3339),
			},
			Attributes: map[string]interface{}{
				"seedBatch":     seedBatch,
				"seedUserEmail": ownerEmail,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func buildMedia(ownerID, adID string, img seedImage) models.Media {
	now := time.Now().UTC()
	return models.Media{
		ID:        uuid.NewString(),
		Owner:     ownerID,
		URL:       fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s", config.AppConfig.CloudinaryCloudName, img.publicID),
		PublicID:  img.publicID,
		Provider:  "cloudinary",
		Format:    "svg",
		Width:     img.width,
		Height:    img.height,
		Kind:      "image",
		Ad:        adID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func buildContacts() *models.ContactChannels {
	phone := fmt.Sprintf("+34%d", randomInt(100000000, 999999999))
	return &models.ContactChannels{
		Whatsapp: phone,
		Telegram: fmt.Sprintf("@forotrix_%d", randomInt(1000, 9999)),
		Phone:    phone,
		Email:    fmt.Sprintf("contacto+%d@forotrix.com", randomInt(1000, 9999)),
		Website:  "https://forotrix.com/ayuda",
	}
}

func buildLocation(city string) *models.LocationInfo {
	normalized := strings.ToLower(strings.TrimSpace(city))
	region := "España"
	switch {
	case strings.Contains(normalized, "barcelona"):
		region = "Cataluña"
	case strings.Contains(normalized, "madrid"):
		region = "Comunidad de Madrid"
	case strings.Contains(normalized, "valencia"):
		region = "Comunidad Valenciana"
	case strings.Contains(normalized, "sevilla"):
		region = "Andalucía"
	case strings.Contains(normalized, "bilbao"):
		region = "País Vasco"
	}
	return &models.LocationInfo{
		Region: region,
		City:   city,
		Zone:   randomItem([]string{"Centro", "Norte", "Sur", "Este", "Oeste"}),
	}
}

// Weekdays get custom hours, weekends unavailable. splitDay, when set, gets a
// morning and an evening range instead of a single block.
func buildAvailability(splitDay string) []models.AvailabilitySlot {
	slots := make([]models.AvailabilitySlot, 0, len(weekDays))
	for _, day := range weekDays {
		if day == models.Saturday || day == models.Sunday {
			slots = append(slots, models.AvailabilitySlot{Day: day, Status: models.AvailabilityUnavailable})
			continue
		}
		ranges := []models.AvailabilityRange{{From: "10:00", To: "18:00"}}
		if day == splitDay {
			ranges = []models.AvailabilityRange{
				{From: "10:00", To: "14:00"},
				{From: "16:00", To: "20:00"},
			}
		}
		slots = append(slots, models.AvailabilitySlot{
			Day:    day,
			Status: models.AvailabilityCustom,
			From:   ranges[0].From,
			To:     ranges[0].To,
			Ranges: ranges,
		})
	}
	return slots
}

func rollGender() models.GenderInfo {
	roll := rand.Float64()
	switch {
	case roll < 0.4:
		return models.GenderInfo{Sex: models.SexFemale, Identity: models.IdentityCis}
	case roll < 0.6:
		return models.GenderInfo{Sex: models.SexFemale, Identity: models.IdentityTrans}
	case roll < 0.9:
		return models.GenderInfo{Sex: models.SexMale, Identity: models.IdentityCis}
	default:
		return models.GenderInfo{Sex: models.SexMale, Identity: models.IdentityTrans}
	}
}

func serviceIDs() []string {
	ids := make([]string, len(models.ServiceFilterOptions))
	for i, opt := range models.ServiceFilterOptions {
		ids[i] = opt.ID
	}
	return ids
}

func randomDescription() string {
	lines := randomSubset(descriptionLines, 2, 3)
	return strings.Join(lines, " ")
}

func randomImages() []seedImage {
	n := randomInt(1, 2)
	return append([]seedImage(nil), randomSubsetImages(n)...)
}

func randomSubsetImages(n int) []seedImage {
	shuffled := append([]seedImage(nil), cloudinaryImages...)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return shuffled[:n]
}

func randomInt(min, max int) int {
	return rand.Intn(max-min+1) + min
}

func randomItem(items []string) string {
	return items[rand.Intn(len(items))]
}

func randomSubset(items []string, min, max int) []string {
	shuffled := append([]string(nil), items...)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return shuffled[:randomInt(min, max)]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
