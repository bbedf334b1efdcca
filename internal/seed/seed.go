// Package seed holds the built-in data used when nothing has been persisted yet.
package seed

import (
	"fmt"
	"time"

	"contentcal/internal/calendar"
	"contentcal/internal/models"
	"contentcal/internal/store"
)

const (
	seedYear = 2026
	seedFrom = time.February
	seedTo   = time.December
)

var contractStart = models.MustDate("2026-02-01")

// Clients returns the agency's initial client list.
func Clients() []models.Client {
	rows := []struct {
		id, name, industry, avatar string
	}{
		{"c1", "Maikai Prime", "Serviços Premium", "name=Maikai+Prime&background=0D8ABC&color=fff"},
		{"c2", "MedConcept", "Marketing Médico", "name=Med+Concept&background=1e293b&color=fff"},
		{"c3", "VetConcetp", "Veterinária", "name=Vet+Concept&background=10b981&color=fff"},
		{"c4", "Dr. Fernando Signore", "Medicina", "name=Fernando+Signore&background=6366f1&color=fff"},
		{"c5", "Dr. Victor Fernandes", "Medicina", "name=Victor+Fernandes&background=8b5cf6&color=fff"},
		{"c6", "Clinica Saúde da Mulher", "Saúde Feminina", "name=Saude+Mulher&background=ec4899&color=fff"},
		{"c7", "Clínica Mahalo", "Saúde e Bem-estar", "name=Clinica+Mahalo&background=f59e0b&color=fff"},
		{"c8", "Dr. João Mancusi", "Medicina", "name=Joao+Mancusi&background=3b82f6&color=fff"},
		{"c9", "CEBRAM", "Institucional", "name=CEBRAM&background=14b8a6&color=fff"},
		{"c10", "Dr. Eduardo Battistella", "Medicina", "name=Eduardo+Battistella&background=64748b&color=fff"},
	}

	clients := make([]models.Client, 0, len(rows))
	for _, r := range rows {
		clients = append(clients, models.Client{
			ID:              r.id,
			Name:            r.name,
			Industry:        r.industry,
			ContractedPosts: models.DefaultContractedPosts,
			AvatarURL:       "https://ui-avatars.com/api/?" + r.avatar,
			StartDate:       contractStart,
			Status:          models.ClientActive,
		})
	}
	return clients
}

// Statuses returns the default production pipeline. The first entry is the
// status given to new posts.
func Statuses() []models.WorkflowStatus {
	return []models.WorkflowStatus{
		{ID: "roteiro", Label: "Roteiro", ColorClass: "bg-gray-100 text-gray-700"},
		{ID: "captacao", Label: "Captação", ColorClass: "bg-blue-100 text-blue-700"},
		{ID: "design", Label: "Design", ColorClass: "bg-purple-100 text-purple-700"},
		{ID: "edicao", Label: "Edição", ColorClass: "bg-indigo-100 text-indigo-700"},
		{ID: "aprovacao-ralph", Label: "Aguardando aprovação Ralph", ColorClass: "bg-orange-100 text-orange-800"},
		{ID: "aprovacao-cliente", Label: "Aguardando Aprovação Cliente", ColorClass: "bg-yellow-100 text-yellow-800"},
		{ID: "ajustes", Label: "Ajustes", ColorClass: "bg-red-100 text-red-700"},
		{ID: "agendado", Label: "Aprovado e agendado pelo cliente", ColorClass: "bg-emerald-100 text-emerald-700"},
		{ID: "postado", Label: "Postado", ColorClass: "bg-slate-800 text-white"},
		{ID: "sem-postagens", Label: "Sem postagens", ColorClass: "bg-slate-200 text-slate-500"},
	}
}

// ColorOptions lists the presentation tokens offered when creating a status.
var ColorOptions = []struct {
	Label string `json:"label"`
	Value string `json:"value"`
}{
	{"Cinza", "bg-gray-100 text-gray-700"},
	{"Azul", "bg-blue-100 text-blue-700"},
	{"Indigo", "bg-indigo-100 text-indigo-700"},
	{"Roxo", "bg-purple-100 text-purple-700"},
	{"Amarelo", "bg-yellow-100 text-yellow-800"},
	{"Laranja", "bg-orange-100 text-orange-800"},
	{"Verde", "bg-emerald-100 text-emerald-700"},
	{"Vermelho", "bg-red-100 text-red-700"},
	{"Escuro", "bg-slate-800 text-white"},
}

// Posts fills February to December 2026 for every client with the monthly
// distribution. Ids are stable: clientID-year-monthIndex-n, monthIndex 0-based.
func Posts(clients []models.Client) []models.Post {
	gen := calendar.New()
	var posts []models.Post
	for _, c := range clients {
		batch := gen.YearByMonth(c, seedYear, seedFrom, seedTo, models.FallbackStatusLabel)
		for i := range batch {
			month := int(batch[i].StartDate.Month()) - 1
			batch[i].ID = fmt.Sprintf("%s-%d-%d-%d", c.ID, seedYear, month, batch[i].PostNumber)
		}
		posts = append(posts, batch...)
	}
	return posts
}

// Data bundles the seed collections for store.Load.
func Data() store.Seed {
	clients := Clients()
	return store.Seed{
		Clients:  clients,
		Posts:    Posts(clients),
		Statuses: Statuses(),
	}
}
