// internal/seed/data.go
package seed

import (
	"fmt"
	"strings"

	"github.com/Pjezz/carmatch/internal/models"
)

// Brand carries the catalog metadata used to derive similarity weights and
// the SIMILAR_A edge set.
type Brand struct {
	Name        string
	Origin      string
	Traits      []string
	PriceTier   string
	Reliability int
}

// VehicleType carries the contextual metadata stored on Tipo nodes.
type VehicleType struct {
	Category          string
	TargetDemographic []string
	PrimaryUse        string
	Capacity          int
}

// Fuels and Transmissions are the categorical value sets of the catalog.
var (
	Fuels         = []string{"Gasolina", "Diésel", "Eléctrico", "Híbrido"}
	Transmissions = []string{"Automática", "Manual", "Semiautomática"}
)

// Brands lists every brand in the catalog. Order is stable so seeding runs
// produce identical graphs.
var Brands = []Brand{
	{"Toyota", "Japón", []string{"Confiable", "Eficiente", "Familiar"}, "medio", 9},
	{"Honda", "Japón", []string{"Confiable", "Deportivo", "Eficiente"}, "medio", 9},
	{"Nissan", "Japón", []string{"Innovador", "Confiable", "Tecnológico"}, "medio", 8},
	{"Mazda", "Japón", []string{"Deportivo", "Elegante", "Eficiente"}, "medio", 8},
	{"Subaru", "Japón", []string{"Aventurero", "Seguro", "AWD"}, "medio-alto", 8},
	{"Mitsubishi", "Japón", []string{"Aventurero", "Robusto", "Accesible"}, "medio-bajo", 7},
	{"Lexus", "Japón", []string{"Lujo", "Confiable", "Refinado"}, "alto", 9},
	{"BMW", "Alemania", []string{"Deportivo", "Lujo", "Performance"}, "alto", 7},
	{"Mercedes-Benz", "Alemania", []string{"Lujo", "Elegante", "Tecnológico"}, "alto", 7},
	{"Audi", "Alemania", []string{"Deportivo", "Tecnológico", "Lujo"}, "alto", 7},
	{"Volkswagen", "Alemania", []string{"Familiar", "Confiable", "Europeo"}, "medio", 7},
	{"Porsche", "Alemania", []string{"Deportivo", "Lujo", "Performance"}, "muy-alto", 8},
	{"Ford", "Estados Unidos", []string{"Potente", "Robusto", "Americano"}, "medio", 6},
	{"Chevrolet", "Estados Unidos", []string{"Potente", "Deportivo", "Americano"}, "medio", 6},
	{"Tesla", "Estados Unidos", []string{"Innovador", "Ecológico", "Tecnológico"}, "alto", 7},
	{"Jeep", "Estados Unidos", []string{"Aventurero", "Robusto", "Off-road"}, "medio-alto", 6},
	{"Hyundai", "Corea del Sur", []string{"Accesible", "Moderno", "Garantía"}, "medio-bajo", 8},
	{"Kia", "Corea del Sur", []string{"Accesible", "Estiloso", "Garantía"}, "medio-bajo", 8},
	{"Genesis", "Corea del Sur", []string{"Lujo", "Moderno", "Valor"}, "alto", 8},
	{"Volvo", "Suecia", []string{"Seguro", "Familiar", "Elegante"}, "alto", 8},
	{"Peugeot", "Francia", []string{"Elegante", "Europeo", "Eficiente"}, "medio", 7},
	{"Renault", "Francia", []string{"Compacto", "Urbano", "Europeo"}, "medio-bajo", 6},
}

// SimilarBrands is the adjacency list behind the SIMILAR_A edges. Each entry
// points at the five closest peers of a brand.
var SimilarBrands = map[string][]string{
	"Toyota":        {"Honda", "Nissan", "Mazda", "Subaru", "Lexus"},
	"Honda":         {"Toyota", "Mazda", "Nissan", "Subaru", "Hyundai"},
	"BMW":           {"Audi", "Mercedes-Benz", "Lexus", "Genesis", "Volvo"},
	"Mercedes-Benz": {"BMW", "Audi", "Lexus", "Genesis", "Volvo"},
	"Audi":          {"BMW", "Mercedes-Benz", "Lexus", "Volvo", "Genesis"},
	"Tesla":         {"BMW", "Audi", "Mercedes-Benz", "Genesis", "Volvo"},
	"Ford":          {"Chevrolet", "Jeep", "Toyota", "Honda", "Nissan"},
	"Chevrolet":     {"Ford", "Jeep", "Hyundai", "Kia", "Nissan"},
	"Hyundai":       {"Kia", "Honda", "Toyota", "Nissan", "Chevrolet"},
	"Kia":           {"Hyundai", "Honda", "Mazda", "Toyota", "Nissan"},
	"Nissan":        {"Toyota", "Honda", "Mazda", "Hyundai", "Subaru"},
	"Mazda":         {"Honda", "Toyota", "Nissan", "Subaru", "Kia"},
	"Subaru":        {"Toyota", "Honda", "Mazda", "Volvo", "Nissan"},
	"Volvo":         {"BMW", "Mercedes-Benz", "Audi", "Subaru", "Lexus"},
	"Lexus":         {"Mercedes-Benz", "BMW", "Audi", "Genesis", "Volvo"},
	"Genesis":       {"BMW", "Mercedes-Benz", "Audi", "Lexus", "Volvo"},
	"Porsche":       {"BMW", "Audi", "Mercedes-Benz", "Lexus", "Tesla"},
	"Jeep":          {"Ford", "Chevrolet", "Subaru", "Toyota", "Nissan"},
	"Mitsubishi":    {"Nissan", "Subaru", "Honda", "Hyundai", "Kia"},
	"Peugeot":       {"Renault", "Volkswagen", "Honda", "Toyota", "Hyundai"},
	"Renault":       {"Peugeot", "Volkswagen", "Hyundai", "Kia", "Honda"},
	"Volkswagen":    {"Audi", "BMW", "Honda", "Toyota", "Peugeot"},
}

// VehicleTypes lists every Tipo node with its contextual metadata.
var VehicleTypes = []VehicleType{
	{"Sedán", []string{"familia", "profesional"}, "urbano", 5},
	{"SUV", []string{"familia", "aventurero"}, "mixto", 7},
	{"Hatchback", []string{"joven", "urbano"}, "ciudad", 5},
	{"Pickup", []string{"trabajador", "aventurero"}, "trabajo", 5},
	{"Coupé", []string{"joven", "deportivo"}, "recreativo", 4},
	{"Convertible", []string{"joven", "deportivo"}, "recreativo", 4},
	{"Crossover", []string{"familia", "urbano"}, "mixto", 5},
	{"Minivan", []string{"familia_grande"}, "familiar", 8},
}

type modelSpec struct {
	model     string
	vtype     string
	basePrice float64
	segment   string
}

type brandModels struct {
	brand  string
	models []modelSpec
}

// catalogModels drives vehicle generation. Each model is expanded across
// three years and three trim levels.
var catalogModels = []brandModels{
	{"Toyota", []modelSpec{
		{"Corolla", "Sedán", 25000, "compacto"},
		{"Camry", "Sedán", 30000, "medio"},
		{"RAV4", "SUV", 35000, "compacto"},
		{"Highlander", "SUV", 40000, "grande"},
		{"Prius", "Hatchback", 28000, "híbrido"},
		{"Sienna", "Minivan", 35000, "familiar"},
		{"Yaris", "Hatchback", 18000, "económico"},
		{"Avalon", "Sedán", 38000, "lujo"},
	}},
	{"Honda", []modelSpec{
		{"Civic", "Sedán", 27000, "compacto"},
		{"Accord", "Sedán", 31000, "medio"},
		{"CR-V", "SUV", 36000, "compacto"},
		{"Pilot", "SUV", 42000, "grande"},
		{"Fit", "Hatchback", 20000, "económico"},
		{"Odyssey", "Minivan", 38000, "familiar"},
		{"HR-V", "Crossover", 24000, "compacto"},
		{"Ridgeline", "Pickup", 40000, "medio"},
	}},
	{"BMW", []modelSpec{
		{"3 Series", "Sedán", 45000, "lujo"},
		{"5 Series", "Sedán", 55000, "lujo"},
		{"X3", "SUV", 50000, "lujo"},
		{"X5", "SUV", 65000, "lujo"},
		{"2 Series", "Coupé", 40000, "deportivo"},
		{"Z4", "Convertible", 55000, "deportivo"},
		{"X1", "Crossover", 38000, "lujo"},
		{"i3", "Hatchback", 48000, "eléctrico"},
	}},
	{"Tesla", []modelSpec{
		{"Model 3", "Sedán", 42000, "eléctrico"},
		{"Model S", "Sedán", 75000, "lujo_eléctrico"},
		{"Model Y", "SUV", 48000, "eléctrico"},
		{"Model X", "SUV", 85000, "lujo_eléctrico"},
		{"Cybertruck", "Pickup", 60000, "eléctrico"},
	}},
	{"Ford", []modelSpec{
		{"Focus", "Hatchback", 22000, "compacto"},
		{"Fusion", "Sedán", 28000, "medio"},
		{"Mustang", "Coupé", 38000, "deportivo"},
		{"Explorer", "SUV", 40000, "grande"},
		{"F-150", "Pickup", 45000, "trabajo"},
		{"Escape", "Crossover", 28000, "compacto"},
		{"Bronco", "SUV", 35000, "aventura"},
		{"Edge", "SUV", 38000, "medio"},
	}},
	{"Mercedes-Benz", []modelSpec{
		{"C-Class", "Sedán", 48000, "lujo"},
		{"E-Class", "Sedán", 58000, "lujo"},
		{"GLC", "SUV", 55000, "lujo"},
		{"GLE", "SUV", 68000, "lujo"},
		{"A-Class", "Hatchback", 35000, "lujo_compacto"},
		{"S-Class", "Sedán", 95000, "ultra_lujo"},
	}},
	{"Hyundai", []modelSpec{
		{"Elantra", "Sedán", 22000, "económico"},
		{"Sonata", "Sedán", 28000, "medio"},
		{"Tucson", "SUV", 28000, "compacto"},
		{"Santa Fe", "SUV", 35000, "medio"},
		{"Kona", "Crossover", 25000, "compacto"},
		{"Ioniq", "Hatchback", 30000, "híbrido"},
		{"Palisade", "SUV", 38000, "familiar"},
	}},
	{"Kia", []modelSpec{
		{"Forte", "Sedán", 20000, "económico"},
		{"Optima", "Sedán", 26000, "medio"},
		{"Sportage", "SUV", 26000, "compacto"},
		{"Sorento", "SUV", 33000, "medio"},
		{"Soul", "Crossover", 22000, "urbano"},
		{"Stinger", "Sedán", 38000, "deportivo"},
		{"Telluride", "SUV", 36000, "familiar"},
	}},
}

var catalogYears = []int{2022, 2023, 2024}

var trimLevels = []string{"Base", "Premium", "Sport"}

var trimPriceModifier = map[string]float64{
	"Base":    0,
	"Premium": 5000,
	"Sport":   8000,
}

// fuelMixes approximates the fuel distribution per vehicle type with a
// fixed ten slot rotation, so a reseed always assigns the same fuel to the
// same vehicle.
var fuelMixes = map[string][]string{
	"Sedán":       {"Gasolina", "Gasolina", "Híbrido", "Gasolina", "Gasolina", "Eléctrico", "Gasolina", "Híbrido", "Gasolina", "Híbrido"},
	"SUV":         {"Gasolina", "Gasolina", "Gasolina", "Híbrido", "Gasolina", "Gasolina", "Eléctrico", "Gasolina", "Híbrido", "Gasolina"},
	"Hatchback":   {"Gasolina", "Híbrido", "Gasolina", "Eléctrico", "Gasolina", "Híbrido", "Gasolina", "Eléctrico", "Gasolina", "Híbrido"},
	"Pickup":      {"Gasolina", "Gasolina", "Diésel", "Gasolina", "Gasolina", "Gasolina", "Gasolina", "Diésel", "Gasolina", "Gasolina"},
	"Coupé":       {"Gasolina", "Gasolina", "Gasolina", "Gasolina", "Eléctrico", "Gasolina", "Gasolina", "Gasolina", "Gasolina", "Gasolina"},
	"Convertible": {"Gasolina", "Gasolina", "Gasolina", "Gasolina", "Gasolina", "Gasolina", "Gasolina", "Gasolina", "Gasolina", "Eléctrico"},
	"Crossover":   {"Gasolina", "Híbrido", "Gasolina", "Gasolina", "Eléctrico", "Gasolina", "Híbrido", "Gasolina", "Gasolina", "Híbrido"},
	"Minivan":     {"Gasolina", "Gasolina", "Híbrido", "Gasolina", "Gasolina", "Gasolina", "Gasolina", "Híbrido", "Gasolina", "Gasolina"},
}

var defaultFuelMix = []string{"Gasolina", "Gasolina", "Híbrido", "Gasolina", "Gasolina", "Gasolina", "Eléctrico", "Gasolina", "Híbrido", "Gasolina"}

var baseFeatures = []string{"Aire acondicionado", "Radio AM/FM", "Bluetooth"}

var trimFeatures = map[string][]string{
	"Base":    {},
	"Premium": {"Pantalla táctil", "Cámara trasera", "Control crucero", "Asientos de tela premium"},
	"Sport":   {"Asientos deportivos", "Volante deportivo", "Suspensión deportiva", "Llantas de aleación"},
}

var luxuryBrandFeatures = map[string][]string{
	"BMW":           {"iDrive", "Asientos de cuero", "Faros LED", "Sistema de sonido premium"},
	"Mercedes-Benz": {"MBUX", "Asientos de cuero Artico", "Faros LED Inteligentes", "Sonido Burmester"},
	"Audi":          {"MMI", "Asientos de cuero", "Faros Matrix LED", "Sistema Bang & Olufsen"},
	"Tesla":         {"Piloto automático", "Pantalla táctil 15\"", "Actualizaciones OTA", "Supercargador"},
	"Lexus":         {"Lexus Safety System", "Asientos de cuero", "Sistema Mark Levinson", "Faros LED"},
}

var typeFeatures = map[string][]string{
	"SUV":         {"Tracción integral", "Control de descenso", "Barras de techo"},
	"Pickup":      {"Caja de carga", "Gancho de remolque", "Tracción 4x4"},
	"Coupé":       {"Suspensión deportiva", "Frenos de alto rendimiento", "Escape deportivo"},
	"Convertible": {"Techo convertible", "Barra antivuelco", "Asientos con calefacción"},
	"Hatchback":   {"Asientos traseros abatibles", "Portón trasero", "Diseño compacto"},
	"Minivan":     {"Puertas corredizas", "Asientos capitán", "8 asientos", "Entretenimiento trasero"},
}

const maxFeatures = 8

// Catalog generates the full vehicle catalog. Every invocation yields the
// same vehicles in the same order.
func Catalog() []models.Vehicle {
	var out []models.Vehicle
	id := 1

	for _, bm := range catalogModels {
		for _, spec := range bm.models {
			for _, year := range catalogYears {
				for _, trim := range trimLevels {
					v := models.Vehicle{
						ID:        fmt.Sprintf("car_%d", id),
						Brand:     bm.brand,
						Model:     fmt.Sprintf("%s %s", spec.model, trim),
						Year:      year,
						Price:     spec.basePrice + trimPriceModifier[trim],
						Type:      spec.vtype,
						Fuel:      fuelFor(bm.brand, spec, trim, id),
						Segment:   spec.segment,
						TrimLevel: trim,
					}
					v.Transmission = transmissionFor(v.Fuel, spec.vtype, trim, id)
					v.Features = featuresFor(bm.brand, spec.vtype, trim)
					out = append(out, v)
					id++
				}
			}
		}
	}

	return out
}

// fuelFor picks the fuel for one catalog entry. Electric-only brands and
// hybrid-only models override the per-type rotation.
func fuelFor(brand string, spec modelSpec, trim string, seq int) string {
	switch {
	case brand == "Tesla":
		return "Eléctrico"
	case strings.Contains(spec.model, "Prius") || strings.Contains(spec.model, "Ioniq"):
		return "Híbrido"
	case trim == "Sport" && (spec.vtype == "Coupé" || spec.vtype == "Convertible"):
		return "Gasolina"
	}

	mix, ok := fuelMixes[spec.vtype]
	if !ok {
		mix = defaultFuelMix
	}
	return mix[seq%len(mix)]
}

func transmissionFor(fuel, vtype, trim string, seq int) string {
	if fuel == "Eléctrico" {
		return "Automática"
	}
	if trim == "Sport" && (vtype == "Coupé" || vtype == "Sedán") && seq%3 == 0 {
		return "Manual"
	}
	return "Automática"
}

// featuresFor assembles the feature list from trim, brand and body-type
// pools, deduplicated in insertion order and capped at maxFeatures.
func featuresFor(brand, vtype, trim string) []string {
	features := make([]string, 0, maxFeatures)
	seen := make(map[string]struct{})

	add := func(pool []string) {
		for _, f := range pool {
			if len(features) >= maxFeatures {
				return
			}
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			features = append(features, f)
		}
	}

	add(baseFeatures)
	add(trimFeatures[trim])
	add(luxuryBrandFeatures[brand])
	add(typeFeatures[vtype])

	return features
}
