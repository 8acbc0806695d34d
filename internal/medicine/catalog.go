// internal/medicine/catalog.go
package medicine

import (
	"context"

	"medassist-workers/internal/models"
)

// Catalog returns the OTC medicines suggested for a category. Unknown or
// empty categories yield an empty list, never an error.
type Catalog interface {
	ForCategory(ctx context.Context, category models.Category) ([]models.Medicine, error)
}

type StaticCatalog struct {
	byCategory map[models.Category][]models.Medicine
}

func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{byCategory: defaultMedicines()}
}

func (c *StaticCatalog) ForCategory(_ context.Context, category models.Category) ([]models.Medicine, error) {
	meds := c.byCategory[category]
	out := make([]models.Medicine, len(meds))
	for i, m := range meds {
		out[i] = cloneMedicine(m)
	}
	return out, nil
}

// All flattens the catalog in category order. Used to seed search indexes.
func (c *StaticCatalog) All() []models.Medicine {
	var out []models.Medicine
	for _, cat := range models.Categories {
		for _, m := range c.byCategory[cat] {
			out = append(out, cloneMedicine(m))
		}
	}
	return out
}

func cloneMedicine(m models.Medicine) models.Medicine {
	m.Brands = append([]string(nil), m.Brands...)
	m.SideEffects = append([]string(nil), m.SideEffects...)
	m.Warnings = append([]string(nil), m.Warnings...)
	return m
}

func defaultMedicines() map[models.Category][]models.Medicine {
	cetirizine := func(cat models.Category, use string) models.Medicine {
		return models.Medicine{
			Name:        "Cetirizine",
			GenericName: "Cetirizine",
			Brands:      []string{"Zyrtec", "Alerid", "Cetrizet"},
			Dosage:      "10mg once daily",
			MaxDaily:    "10mg",
			Use:         use,
			SideEffects: []string{"Drowsiness", "Dry mouth"},
			Warnings:    []string{"May cause drowsiness"},
			PriceRange:  "₹20-₹50 per strip",
			Category:    cat,
		}
	}

	return map[models.Category][]models.Medicine{
		models.CategoryPainFever: {
			{
				Name:        "Paracetamol",
				GenericName: "Acetaminophen",
				Brands:      []string{"Crocin", "Dolo", "Calpol"},
				Dosage:      "500mg-1000mg every 4-6 hours",
				MaxDaily:    "4000mg",
				Use:         "Pain relief, fever reduction",
				SideEffects: []string{"Rare: liver damage at high doses"},
				Warnings:    []string{"Don't exceed maximum dose", "Avoid with alcohol"},
				PriceRange:  "₹10-₹30 per strip",
				Category:    models.CategoryPainFever,
			},
			{
				Name:        "Ibuprofen",
				GenericName: "Ibuprofen",
				Brands:      []string{"Brufen", "Advil", "Combiflam"},
				Dosage:      "200mg-400mg every 4-6 hours",
				MaxDaily:    "1200mg (OTC)",
				Use:         "Pain, inflammation, fever",
				SideEffects: []string{"Stomach upset", "Heartburn"},
				Warnings:    []string{"Take with food", "Not for stomach ulcers"},
				PriceRange:  "₹15-₹40 per strip",
				Category:    models.CategoryPainFever,
			},
		},
		models.CategoryColdCough: {
			cetirizine(models.CategoryColdCough, "Allergic rhinitis, cold symptoms"),
		},
		models.CategoryAcidity: {
			{
				Name:        "Omeprazole",
				GenericName: "Omeprazole",
				Brands:      []string{"Omez", "Prilosec"},
				Dosage:      "20mg once daily before breakfast",
				MaxDaily:    "20mg (OTC)",
				Use:         "Acid reflux, heartburn",
				SideEffects: []string{"Headache", "Nausea"},
				Warnings:    []string{"Take 30 min before eating"},
				PriceRange:  "₹30-₹80 per strip",
				Category:    models.CategoryAcidity,
			},
		},
		models.CategoryDigestive: {
			{
				Name:        "Loperamide",
				GenericName: "Loperamide",
				Brands:      []string{"Imodium", "Eldoper"},
				Dosage:      "2mg initially, then 2mg after each loose stool",
				MaxDaily:    "8mg",
				Use:         "Diarrhea",
				SideEffects: []string{"Constipation", "Dizziness"},
				Warnings:    []string{"Don't use if fever present"},
				PriceRange:  "₹25-₹60 per strip",
				Category:    models.CategoryDigestive,
			},
		},
		models.CategorySkin: {
			cetirizine(models.CategorySkin, "Itching, hives, allergic skin reactions"),
			{
				Name:        "Calamine Lotion",
				GenericName: "Calamine + Zinc Oxide",
				Brands:      []string{"Lacto Calamine", "Caladryl"},
				Dosage:      "Apply thin layer to affected area 2-3 times daily",
				MaxDaily:    "As needed (external use only)",
				Use:         "Itching, mild rashes, insect bites",
				SideEffects: []string{"Mild skin dryness"},
				Warnings:    []string{"For external use only", "Avoid eyes and broken skin"},
				PriceRange:  "₹60-₹150 per bottle",
				Category:    models.CategorySkin,
			},
		},
	}
}
