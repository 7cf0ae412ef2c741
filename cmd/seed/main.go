package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/freeads/marketplace-api/config"
)

type seedAd struct {
	category    string
	subCategory string
	title       string
	description string
	price       float64
	location    string
	image       string
}

var sampleAds = []seedAd{
	{"Cars", "Used Cars", "Maruti Suzuki Swift VXI", "Single owner, full service history, new tyres.", 550000, "Mumbai", "https://storage.googleapis.com/freeads-demo/seed/swift.jpg"},
	{"Mobiles", "Mobile Phones", "iPhone 13 128GB Midnight", "Bill and box available, battery health 91%.", 42000, "Delhi", "https://storage.googleapis.com/freeads-demo/seed/iphone13.jpg"},
	{"Bikes", "Motorcycles", "Royal Enfield Classic 350", "2021 model, 8k km, first owner.", 145000, "Bangalore", "https://storage.googleapis.com/freeads-demo/seed/classic350.jpg"},
	{"Furniture", "Sofa & Dining", "3 seater fabric sofa", "Barely used, pet-free home, pickup only.", 12000, "Pune", "https://storage.googleapis.com/freeads-demo/seed/sofa.jpg"},
	{"Electronics & Appliances", "TVs", "Sony Bravia 55 inch 4K", "2 years old, wall mount included.", 38000, "Hyderabad", "https://storage.googleapis.com/freeads-demo/seed/bravia.jpg"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	phone := "9999999999"
	name := "Demo Seller"

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (name, phone)
		VALUES ($1, $2)
		ON CONFLICT (phone) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name, phone).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s phone=%s name=%s\n", userID, phone, name)

	for _, ad := range sampleAds {
		var id string
		err := db.QueryRow(`
			INSERT INTO advertisements
				(category, sub_category, title, description, price, location, phone, images, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8::text[], $9)
			RETURNING id
		`, ad.category, ad.subCategory, ad.title, ad.description, ad.price, ad.location, phone,
			fmt.Sprintf("{%s}", ad.image), userID).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed advertisement %q: %v", ad.title, err)
		}
		fmt.Printf("seeded advertisement: id=%s title=%s\n", id, ad.title)
	}
}
