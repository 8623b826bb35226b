package emissions

import "math"

const (
	// TreesAbsorptionKgPerYear est l'absorption annuelle moyenne d'un arbre.
	TreesAbsorptionKgPerYear = 22.0

	// cateringKgPerAttendee couvre un repas servi par participant.
	cateringKgPerAttendee = 2.5
	// travelKgPerAttendee est l'estimation forfaitaire du trajet d'un participant.
	travelKgPerAttendee = 5.0
)

// round2 arrondit à deux décimales. Les calculs intermédiaires restent en
// pleine précision, seul le résultat final persisté est arrondi.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TravelEmission répartit l'émission du véhicule entre les passagers.
// passengers est plafonné à 1 minimum : zéro passager se comporte comme un.
func (t *Table) TravelEmission(vehicleType string, distanceKm float64, passengers int) float64 {
	f := t.FactorFor(CategoryTravel, vehicleType)
	if passengers < 1 {
		passengers = 1
	}
	return round2(f.KgPerUnit * distanceKm / float64(passengers))
}

// EventEmission calcule facteur × participants × heures, plus les forfaits
// traiteur et déplacement par participant quand ils sont activés.
func (t *Table) EventEmission(eventType string, attendees int, durationHours float64, hasCatering, hasTravel bool) float64 {
	f := t.FactorFor(CategoryEvents, eventType)
	total := f.KgPerUnit * float64(attendees) * durationHours
	if hasCatering {
		total += float64(attendees) * cateringKgPerAttendee
	}
	if hasTravel {
		total += float64(attendees) * travelKgPerAttendee
	}
	return round2(total)
}

// InfrastructureEmission applique le facteur aux kWh consommés
// (puissance × heures × quantité), pas directement à la quantité.
func (t *Table) InfrastructureEmission(equipmentType string, usageHours, powerRatingKw float64, quantity int) float64 {
	f := t.FactorFor(CategoryInfrastructure, equipmentType)
	kwh := powerRatingKw * usageHours * float64(quantity)
	return round2(f.KgPerUnit * kwh)
}

// MarketingEmission suit la formule portée par l'entrée de la table : les
// sous-types numériques multiplient par la durée de diffusion, les supports
// physiques l'ignorent.
func (t *Table) MarketingEmission(marketingType string, quantity, durationDays int) float64 {
	f := t.FactorFor(CategoryMarketing, marketingType)
	if f.PerDay {
		return round2(f.KgPerUnit * float64(quantity) * float64(durationDays))
	}
	return round2(f.KgPerUnit * float64(quantity))
}

// OfficeEmission : facteur × quantité. L'unité de la quantité dépend du
// sous-type (minutes, GB, feuilles, colis, litres) mais la formule est la même.
func (t *Table) OfficeEmission(activityType string, quantity float64) float64 {
	f := t.FactorFor(CategoryOffice, activityType)
	return round2(f.KgPerUnit * quantity)
}

// StaffWelfareEmission : facteur × bénéficiaires.
func (t *Table) StaffWelfareEmission(welfareType string, beneficiaries int) float64 {
	f := t.FactorFor(CategoryStaffWelfare, welfareType)
	return round2(f.KgPerUnit * float64(beneficiaries))
}

// EnergyEmission convertit un relevé électrique via le facteur electricity.
func (t *Table) EnergyEmission(electricityKwh float64) float64 {
	f := t.FactorFor(CategoryInfrastructure, "electricity")
	return round2(f.KgPerUnit * electricityKwh)
}
