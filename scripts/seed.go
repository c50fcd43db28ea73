package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/touristtalks/backend/internal/adapters/database"
	"github.com/touristtalks/backend/internal/application/services"
	"github.com/touristtalks/backend/internal/domain/entities"
	"github.com/touristtalks/backend/internal/infrastructure/clients/postgres"
	"github.com/touristtalks/backend/internal/infrastructure/observability"
	"github.com/touristtalks/backend/internal/infrastructure/security"
	"github.com/touristtalks/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	observability.InitLogger("touristtalks-seed", cfg.Logging.Env, cfg.Logging.Level)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer pgClient.Close()

	ctx := context.Background()
	if err := pgClient.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE reviews, places, users, revoked_tokens;
			ALTER SEQUENCE place_id_seq RESTART;
			ALTER SEQUENCE review_id_seq RESTART;
			ALTER SEQUENCE user_id_seq RESTART;
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to reset tables")
		}
	}

	tokens, err := security.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize token issuer")
	}
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)

	userRepo := database.NewUserAdapter(pgClient)
	placeService := services.NewPlaceService(database.NewPlaceAdapter(pgClient))
	reviewService := services.NewReviewService(database.NewReviewAdapter(pgClient), userRepo)
	authService := services.NewAuthService(userRepo, database.NewRevokedTokenAdapter(pgClient), hasher, tokens, false)

	// 1. Seed users
	accounts := []services.SignupInput{
		{Username: "admin", Fullname: "Site Admin", Password: "admin-password", Email: "admin@touristtalks.app", Role: entities.RoleAdmin},
		{Username: "wanderer", Fullname: "Sam Walker", Password: "wanderer-password", Email: "sam@example.com", Role: entities.RoleUser},
		{Username: "daytripper", Fullname: "Alex Rivers", Password: "daytripper-password", Email: "alex@example.com", Role: entities.RoleUser},
	}

	var userIDs []string
	for _, account := range accounts {
		id, err := authService.Signup(ctx, account)
		if err != nil {
			log.Warn().Err(err).Str("username", account.Username).Msg("Failed to create user")
			continue
		}
		userIDs = append(userIDs, id)
	}

	// 2. Seed places
	places := []entities.Place{
		{
			LocationID:  1001,
			SiteName:    "Edinburgh Castle",
			Summary:     "Historic fortress on Castle Rock",
			Description: "A castle that has dominated the city skyline for centuries.",
			Location:    entities.Location{Latitude: 55.9486, Longitude: -3.1999},
			Type:        []string{"Castle"},
			Tags:        []string{"history", "views"},
			Address:     entities.Address{Address1: "Castlehill", Address2: "Edinburgh", Postcode: "EH1 2NG"},
			Website:     []string{"https://www.edinburghcastle.scot"},
			Categories:  []string{"Historic", "Attraction"},
			Rating:      4.7,
		},
		{
			LocationID:  1002,
			SiteName:    "Royal Botanic Garden",
			Summary:     "Seventy acres of gardens and glasshouses",
			Description: "A garden founded in the 17th century with a world-class plant collection.",
			Location:    entities.Location{Latitude: 55.9653, Longitude: -3.2090},
			Type:        []string{"Garden"},
			Tags:        []string{"outdoors", "family"},
			Address:     entities.Address{Address1: "Arboretum Place", Address2: "Edinburgh", Postcode: "EH3 5NZ"},
			Categories:  []string{"Park", "Free"},
			Rating:      4.8,
		},
		{
			LocationID:  1003,
			SiteName:    "Arthur's Seat",
			Summary:     "Extinct volcano in Holyrood Park",
			Description: "The main peak of the hills in Holyrood Park, popular for walks.",
			Location:    entities.Location{Latitude: 55.9440, Longitude: -3.1618},
			Type:        []string{"Hill"},
			Tags:        []string{"hiking", "views"},
			Address:     entities.Address{Address1: "Queen's Drive", Address2: "Edinburgh", Postcode: "EH8 8HG"},
			Categories:  []string{"Outdoors", "Free"},
			Rating:      4.6,
		},
	}

	var placeIDs []int64
	for i := range places {
		id, err := placeService.Create(ctx, &places[i])
		if err != nil {
			log.Warn().Err(err).Str("site_name", places[i].SiteName).Msg("Failed to create place")
			continue
		}
		placeIDs = append(placeIDs, id)
	}

	if len(userIDs) < 2 || len(placeIDs) == 0 {
		log.Warn().Msg("Skipping reviews; users or places missing")
		return
	}

	// 3. Seed reviews, one per place from the first regular user
	texts := []string{"Worth the climb.", "Lovely in spring.", "Windy but unforgettable."}
	var reviewIDs []string
	for i, placeID := range placeIDs {
		review := &entities.Review{
			PlaceID: placeID,
			UserID:  userIDs[1],
			Text:    texts[i%len(texts)],
			Rating:  entities.NewRating(4.5),
		}
		id, err := reviewService.Create(ctx, review)
		if err != nil {
			log.Warn().Err(err).Int64("place_id", placeID).Msg("Failed to create review")
			continue
		}
		reviewIDs = append(reviewIDs, id)
	}

	// 4. The remaining users like the first review
	if len(reviewIDs) > 0 {
		for _, userID := range userIDs[2:] {
			if err := reviewService.Feedback(ctx, userID, reviewIDs[0], entities.FeedbackLike); err != nil {
				log.Warn().Err(err).Str("user_id", userID).Msg("Failed to record feedback")
			}
		}
	}

	log.Info().
		Int("users", len(userIDs)).
		Int("places", len(placeIDs)).
		Int("reviews", len(reviewIDs)).
		Msg("Seeding completed successfully")
}
