package models

// ServiceFilterOption is one entry of the searchable service catalog.
type ServiceFilterOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ServiceFilterOptions is the catalog exposed at GET /api/ads/filters. Ids are
// stable; labels are display-only.
var ServiceFilterOptions = []ServiceFilterOption{
	{ID: "companionship", Label: "Acompañamiento"},
	{ID: "azotes", Label: "Azotes"},
	{ID: "kiss", Label: "Beso con lengua"},
	{ID: "romantic-date", Label: "Cita íntima"},
	{ID: "cumshots", Label: "Corridas"},
	{ID: "domination", Label: "Dominación"},
	{ID: "gfe", Label: "Experiencia de pareja"},
	{ID: "lesbian-show", Label: "Lesbian show"},
	{ID: "erotic-massage", Label: "Masaje erótico"},
	{ID: "submission", Label: "Sumisión"},
	{ID: "bare-oral", Label: "Sexo oral sin protección"},
	{ID: "group", Label: "Sexo en grupo"},
	{ID: "threesome", Label: "Trío"},
	{ID: "orgy", Label: "Orgía"},
	{ID: "roleplay", Label: "Juegos de rol"},
	{ID: "videocall", Label: "Videollamada"},
	{ID: "body-to-body", Label: "Contacto corporal"},
	{ID: "shower-together", Label: "Ducha compartida"},
	{ID: "sport-massage", Label: "Masaje deportivo"},
	{ID: "personal-training", Label: "Entrenamiento acompañado"},
	{ID: "active-role", Label: "Rol activo"},
	{ID: "passive-role", Label: "Rol pasivo"},
	{ID: "versatile-role", Label: "Rol versátil"},
	{ID: "muscle-worship", Label: "Adoración corporal"},
	{ID: "fetish-session", Label: "Sesión fetichista"},
	{ID: "power-exchange", Label: "Intercambio de poder"},
	{ID: "attends-women", Label: "Atiende a mujeres"},
	{ID: "attends-men", Label: "Atiende a hombres"},
	{ID: "attends-trans", Label: "Atiende a personas trans"},
	{ID: "attends-non-binary", Label: "Atiende a personas no binarias"},
	{ID: "attends-couple-mf", Label: "Atiende a parejas MF"},
	{ID: "attends-couple-ff", Label: "Atiende a parejas FF"},
	{ID: "attends-couple-mm", Label: "Atiende a parejas MM"},
}

// AgeFilterConfig drives the age slider on the frontend.
type AgeFilterConfig struct {
	Label        string `json:"label"`
	Min          int    `json:"min"`
	Max          int    `json:"max"`
	DefaultValue int    `json:"defaultValue"`
}

var AgeFilter = AgeFilterConfig{
	Label:        "Edad",
	Min:          18,
	Max:          99,
	DefaultValue: 35,
}
