package model

import "time"

// Subscription plans. Free users are subject to per-feature usage limits;
// paid plans are unlimited.
const (
	PlanFree    = "free"
	PlanPremium = "premium"
	PlanPro     = "pro"
)

// User represents a registered account with styling preferences and
// freemium usage counters. The counters only ever grow; no in-scope
// operation resets them.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"size:80;uniqueIndex;not null"`
	Email        string `json:"email" gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Plan         string `json:"plan" gorm:"size:50;not null;default:'free'"`

	PreferredStyle    string `json:"estilo_preferido" gorm:"size:50;default:'Casual'"`
	MainActivity      string `json:"actividad_principal" gorm:"size:50;default:'Oficina'"`
	ColdSensitivity   string `json:"sensibilidad_frio" gorm:"size:50;default:'Normal'"`
	PreferredColors   string `json:"colores_preferidos" gorm:"size:100;default:'Neutros'"`
	ClimatePreference string `json:"preferencia_clima" gorm:"size:50;default:'Templado'"`
	TravelFrequency   string `json:"frecuencia_viajes" gorm:"size:50;default:'Ocasional'"`
	FootwearType      string `json:"tipo_calzado" gorm:"size:50;default:'Deportivo'"`
	ExerciseFrequency string `json:"frecuencia_ejercicio" gorm:"size:50;default:'Ocasional'"`
	FabricPreference  string `json:"preferencia_tejido" gorm:"size:50;default:'Algodón'"`
	FavoriteGarment   string `json:"prenda_favorita" gorm:"size:50;default:'Camiseta'"`

	PrefsSaved   bool `json:"preferencias_guardadas" gorm:"default:false"`
	AIOutfitUses int  `json:"ai_outfit_uses" gorm:"not null;default:0"`
	AITravelUses int  `json:"ai_travel_uses" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidUpgradePlan reports whether plan is an allowed upgrade target.
// Downgrades back to free are not supported.
func ValidUpgradePlan(plan string) bool {
	return plan == PlanPremium || plan == PlanPro
}
