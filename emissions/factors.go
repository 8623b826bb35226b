// Package emissions contient la table des facteurs d'émission et les
// calculateurs par catégorie. Tout est pur : une Table immuable en entrée,
// des kilogrammes de CO2e en sortie.
package emissions

// Category identifie l'une des six catégories d'activité suivies.
type Category string

const (
	CategoryTravel         Category = "travel"
	CategoryEvents         Category = "events"
	CategoryInfrastructure Category = "infrastructure"
	CategoryMarketing      Category = "marketing"
	CategoryOffice         Category = "office"
	CategoryStaffWelfare   Category = "staff_welfare"
)

// Categories liste les catégories dans un ordre stable.
func Categories() []Category {
	return []Category{
		CategoryTravel,
		CategoryEvents,
		CategoryInfrastructure,
		CategoryMarketing,
		CategoryOffice,
		CategoryStaffWelfare,
	}
}

// Factor associe un sous-type à son facteur de conversion. PerDay ne concerne
// que le marketing : true pour les sous-types numériques dont l'émission se
// multiplie par la durée de diffusion, false pour les supports physiques où la
// durée est ignorée. Le choix de formule est donc porté par l'entrée elle-même,
// pas par une liste de chaînes au moment du calcul.
type Factor struct {
	KgPerUnit float64 `json:"kg_per_unit"`
	PerDay    bool    `json:"per_day,omitempty"`
}

// Table est la table des facteurs, chargée une fois au démarrage puis injectée
// partout en lecture seule. Aucun couple (catégorie, sous-type) n'apparaît deux
// fois ; un sous-type inconnu se résout sur le facteur par défaut de sa
// catégorie, jamais sur une erreur.
type Table struct {
	factors  map[Category]map[string]Factor
	defaults map[Category]Factor
}

// FactorFor résout toujours un facteur : celui du sous-type s'il est connu,
// sinon le défaut de la catégorie.
func (t *Table) FactorFor(category Category, subtype string) Factor {
	if byType, ok := t.factors[category]; ok {
		if f, ok := byType[subtype]; ok {
			return f
		}
	}
	return t.defaults[category]
}

// Factors expose une copie de la table pour l'endpoint de référence.
func (t *Table) Factors() map[Category]map[string]Factor {
	out := make(map[Category]map[string]Factor, len(t.factors))
	for cat, byType := range t.factors {
		cp := make(map[string]Factor, len(byType))
		for k, v := range byType {
			cp[k] = v
		}
		out[cat] = cp
	}
	return out
}

// DefaultTable construit la table standard (kg CO2e par unité de mesure).
func DefaultTable() *Table {
	return &Table{
		factors: map[Category]map[string]Factor{
			// par km et par passager
			CategoryTravel: {
				"petrol_car":           {KgPerUnit: 0.21},
				"diesel_car":           {KgPerUnit: 0.27},
				"electric_car":         {KgPerUnit: 0.05},
				"hybrid_car":           {KgPerUnit: 0.12},
				"motorcycle":           {KgPerUnit: 0.10},
				"bus":                  {KgPerUnit: 0.089},
				"train":                {KgPerUnit: 0.041},
				"flight_domestic":      {KgPerUnit: 0.255},
				"flight_international": {KgPerUnit: 0.195},
				"bicycle":              {KgPerUnit: 0},
				"walking":              {KgPerUnit: 0},
			},
			// par participant et par heure
			CategoryEvents: {
				"indoor_conference":   {KgPerUnit: 2.5},
				"outdoor_event":       {KgPerUnit: 1.2},
				"virtual_meeting":     {KgPerUnit: 0.05},
				"workshop":            {KgPerUnit: 1.8},
				"training_session":    {KgPerUnit: 1.5},
				"fundraiser":          {KgPerUnit: 3.0},
				"community_gathering": {KgPerUnit: 1.0},
			},
			// par kWh consommé
			CategoryInfrastructure: {
				"electricity":      {KgPerUnit: 0.5},
				"generator_diesel": {KgPerUnit: 2.68},
				"solar_panel":      {KgPerUnit: 0.02},
				"air_conditioning": {KgPerUnit: 0.8},
				"heating":          {KgPerUnit: 0.6},
				"lighting":         {KgPerUnit: 0.4},
				"computers":        {KgPerUnit: 0.3},
				"servers":          {KgPerUnit: 0.5},
			},
			// par unité ; PerDay pour les supports numériques diffusés dans le temps
			CategoryMarketing: {
				"digital_campaign":  {KgPerUnit: 0.02, PerDay: true},
				"email_marketing":   {KgPerUnit: 0.004},
				"social_media_post": {KgPerUnit: 0.01, PerDay: true},
				"printed_brochure":  {KgPerUnit: 0.05},
				"printed_banner":    {KgPerUnit: 2.5},
				"video_production":  {KgPerUnit: 50},
				"website_hosting":   {KgPerUnit: 0.3, PerDay: true},
			},
			// par unité (minute, GB, feuille, colis, litre selon le sous-type)
			CategoryOffice: {
				"phone_call":            {KgPerUnit: 0.01},
				"internet_usage":        {KgPerUnit: 0.05},
				"paper_usage":           {KgPerUnit: 0.005},
				"courier_local":         {KgPerUnit: 1.5},
				"courier_national":      {KgPerUnit: 5.0},
				"courier_international": {KgPerUnit: 15.0},
				"water_consumption":     {KgPerUnit: 0.0003},
			},
			// par bénéficiaire
			CategoryStaffWelfare: {
				"gym_membership":          {KgPerUnit: 5.0},
				"health_checkup":          {KgPerUnit: 3.0},
				"medical_insurance_admin": {KgPerUnit: 1.0},
				"wellness_program":        {KgPerUnit: 2.0},
				"team_outing_local":       {KgPerUnit: 15.0},
				"team_outing_travel":      {KgPerUnit: 50.0},
				"staff_party":             {KgPerUnit: 8.0},
				"gifts_physical":          {KgPerUnit: 2.0},
				"gifts_digital":           {KgPerUnit: 0.1},
				"uniform_cotton":          {KgPerUnit: 10.0},
				"uniform_synthetic":       {KgPerUnit: 15.0},
				"safety_equipment":        {KgPerUnit: 5.0},
				"ppe_disposable":          {KgPerUnit: 0.5},
			},
		},
		defaults: map[Category]Factor{
			CategoryTravel:         {KgPerUnit: 0.21},
			CategoryEvents:         {KgPerUnit: 1.5},
			CategoryInfrastructure: {KgPerUnit: 0.5},
			CategoryMarketing:      {KgPerUnit: 0.02},
			CategoryOffice:         {KgPerUnit: 0.01},
			CategoryStaffWelfare:   {KgPerUnit: 1.0},
		},
	}
}
