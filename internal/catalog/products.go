package catalog

import (
	"strconv"
	"time"

	"github.com/nikolayk812/vibe-vault/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type seedProduct struct {
	id          string
	name        string
	description string
	price       string
	category    domain.Category
	images      []string
	stock       int
	tags        []string
	sku         string
	details     map[string]string
	ratings     []int
}

var seedProducts = []seedProduct{
	{
		id:          "cloth-001",
		name:        "Neon Drip Hoodie",
		description: "Ultra-comfy hoodie with a splash of neon green. Perfect for late-night vibes.",
		price:       "69.99",
		category:    domain.CategoryClothes,
		images: []string{
			"https://placehold.co/600x800/1A1A1A/39FF14?text=NeonHoodie1",
			"https://placehold.co/600x800/1A1A1A/39FF14?text=NeonHoodie2",
		},
		stock:   50,
		tags:    []string{"hoodie", "neon", "streetwear"},
		sku:     "VV-HD-NG-001",
		details: map[string]string{"size": "M, L, XL", "material": "80% Cotton, 20% Polyester"},
		ratings: []int{5, 4, 5},
	},
	{
		id:          "cloth-002",
		name:        "Glitch Graphic Tee",
		description: "Statement tee with a unique glitch art design. Stand out from the crowd.",
		price:       "29.99",
		category:    domain.CategoryClothes,
		images: []string{
			"https://placehold.co/600x800/1A1A1A/8F00FF?text=GlitchTee1",
			"https://placehold.co/600x800/1A1A1A/8F00FF?text=GlitchTee2",
		},
		stock:   100,
		tags:    []string{"t-shirt", "graphic", "edgy"},
		sku:     "VV-TS-GL-002",
		details: map[string]string{"size": "S, M, L", "material": "100% Organic Cotton"},
		ratings: []int{4, 3},
	},
	{
		id:          "cloth-003",
		name:        "Cyberpunk Cargo Pants",
		description: "Futuristic cargo pants with multiple pockets and techwear aesthetic.",
		price:       "89.99",
		category:    domain.CategoryClothes,
		images: []string{
			"https://placehold.co/600x800/1A1A1A/FFFFFF?text=CargoPants1",
			"https://placehold.co/600x800/1A1A1A/FFFFFF?text=CargoPants2",
		},
		stock:   30,
		tags:    []string{"pants", "cargo", "techwear"},
		sku:     "VV-PT-CB-003",
		details: map[string]string{"size": "S, M, L", "material": "Nylon Blend"},
		ratings: []int{5},
	},
	{
		id:          "cloth-004",
		name:        "Digital Camo Tee",
		description: "A stylish t-shirt with a modern digital camouflage pattern. Blend in, stand out.",
		price:       "34.99",
		category:    domain.CategoryClothes,
		images: []string{
			"https://placehold.co/600x800.png",
			"https://placehold.co/600x800.png",
		},
		stock:   75,
		tags:    []string{"t-shirt", "camo", "streetwear", "digital"},
		sku:     "VV-TS-DC-004",
		details: map[string]string{"size": "S, M, L, XL", "material": "95% Cotton, 5% Spandex"},
		ratings: []int{4, 4, 5, 3},
	},
	{
		id:          "food-001",
		name:        "Spicy Ramen Kit (2 Servings)",
		description: "Challenge your taste buds with this fiery ramen kit. Includes noodles, broth, and toppings.",
		price:       "15.99",
		category:    domain.CategoryFood,
		images: []string{
			"https://placehold.co/600x400/1A1A1A/FF0000?text=SpicyRamen",
			"https://placehold.co/600x400/1A1A1A/FF0000?text=RamenIngredients",
		},
		stock:   200,
		tags:    []string{"ramen", "spicy", "asian food"},
		sku:     "VV-FD-RM-001",
		details: map[string]string{"allergens": "Wheat, Soy", "netWeight": "450g"},
		ratings: []int{5, 5, 4},
	},
	{
		id:          "food-002",
		name:        "Gamer Fuel Energy Drink (6 Pack)",
		description: "Stay energized during long gaming sessions with this electric purple energy drink.",
		price:       "12.99",
		category:    domain.CategoryFood,
		images: []string{
			"https://placehold.co/600x400/1A1A1A/8F00FF?text=EnergyDrink",
			"https://placehold.co/600x400/1A1A1A/8F00FF?text=EnergyDrinkPack",
		},
		stock:   150,
		tags:    []string{"energy drink", "gaming", "beverage"},
		sku:     "VV-FD-ED-002",
		details: map[string]string{"flavor": "Electric Berry", "volume": "6 x 250ml"},
		ratings: []int{3, 4},
	},
	{
		id:          "food-003",
		name:        "Artisanal Boba Tea Kit",
		description: "Craft your own delicious boba tea at home. Includes tea, pearls, and straws.",
		price:       "24.99",
		category:    domain.CategoryFood,
		images: []string{
			"https://placehold.co/600x400/1A1A1A/39FF14?text=BobaKit",
			"https://placehold.co/600x400/1A1A1A/39FF14?text=BobaIngredients",
		},
		stock:   80,
		tags:    []string{"boba", "bubble tea", "diy kit"},
		sku:     "VV-FD-BT-003",
		details: map[string]string{"flavorsIncluded": "Classic Milk Tea, Taro", "servings": "Approx. 5"},
		ratings: []int{5, 4, 4, 5, 5},
	},
}

var reviewAuthors = []string{"GamerGuyX", "StyleQueen", "FoodieFiend", "AnonymousUser", "VibeChecker"}

// reviewsEpoch anchors review dates so the catalog is identical on every run.
var reviewsEpoch = time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

func (s seedProduct) product(cur currency.Unit) domain.Product {
	reviews := make([]domain.Review, 0, len(s.ratings))
	for i, rating := range s.ratings {
		reviews = append(reviews, domain.Review{
			ID:      s.id + "-review-" + strconv.Itoa(i+1),
			Author:  reviewAuthors[(len(s.id)+i)%len(reviewAuthors)],
			Rating:  rating,
			Comment: "This is pretty dope! Would totally recommend to a friend.",
			Date:    reviewsEpoch.AddDate(0, 0, -3*(i+1)),
		})
	}

	return domain.Product{
		ID:          s.id,
		Name:        s.name,
		Description: s.description,
		Price:       domain.NewMoney(decimal.RequireFromString(s.price), cur),
		Category:    s.category,
		Images:      s.images,
		Stock:       s.stock,
		Tags:        s.tags,
		SKU:         s.sku,
		Details:     s.details,
		Reviews:     reviews,
	}
}
