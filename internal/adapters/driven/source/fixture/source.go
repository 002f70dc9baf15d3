// Package fixture provides the built-in studio knowledge base. It serves as
// the default document source until a studio wires up a CMS or a local
// knowledge directory.
package fixture

import (
	"context"
	"time"

	"github.com/blackink-studio/inkwell/internal/core/domain"
	"github.com/blackink-studio/inkwell/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Source returns the studio's built-in documents.
type Source struct{}

// NewSource creates a new fixture document source.
func NewSource() *Source {
	return &Source{}
}

// Name identifies the source for logging.
func (s *Source) Name() string {
	return "fixture"
}

// Fetch returns the built-in studio documents. LastUpdated is stamped at
// fetch time since the content ships with the binary.
func (s *Source) Fetch(_ context.Context) ([]domain.Document, error) {
	now := time.Now().UTC()

	return []domain.Document{
		{
			Type:    domain.DocumentTypeFAQ,
			Title:   "PF Generales (FAQ)",
			Content: "¿Cuánto cuesta un tatuaje? El precio mínimo es de $150. La tarifa por hora es de $150-200 dependiendo del artista.",
			Metadata: domain.DocumentMetadata{
				Source:      "faq_system",
				Category:    "pricing",
				Priority:    5,
				LastUpdated: now,
			},
		},
		{
			Type:    domain.DocumentTypeServices,
			Title:   "Servicios de Tatuaje",
			Content: "Ofrecemos Diseño Personalizado, Realismo, Tradicional y Cover Ups. Las consultas son gratuitas.",
			Metadata: domain.DocumentMetadata{
				Source:      "services_db",
				Category:    "services",
				Priority:    5,
				LastUpdated: now,
			},
		},
		{
			Type:    domain.DocumentTypePolicies,
			Title:   "Política de Depósitos",
			Content: "Se requiere un depósito no reembolsable para reservar. $50 para piezas pequeñas, $100 para las grandes.",
			Metadata: domain.DocumentMetadata{
				Source:      "policy_doc",
				Category:    "booking",
				Priority:    5,
				LastUpdated: now,
			},
		},
		{
			Type:    domain.DocumentTypeCare,
			Title:   "Guía de Cuidados",
			Content: "Mantén el vendaje durante 2-4 horas. Lava con jabón sin aroma. Aplica una capa fina de Aquaphor o la loción recomendada.",
			Metadata: domain.DocumentMetadata{
				Source:      "care_guide",
				Category:    "care",
				Priority:    5,
				LastUpdated: now,
			},
		},
	}, nil
}
