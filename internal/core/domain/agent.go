package domain

// AgentRole identifies a specialised support agent.
type AgentRole string

// Agent roles. Each role carries its own prompt, model settings and
// retrieval filter.
const (
	RoleBooking AgentRole = "booking"
	RoleProduct AgentRole = "product"
	RoleSupport AgentRole = "support"
	RoleSales   AgentRole = "sales"
	RoleCare    AgentRole = "care"
	RoleAdmin   AgentRole = "admin"
)

// ValidRole reports whether s names a known agent role.
func ValidRole(s string) bool {
	switch AgentRole(s) {
	case RoleBooking, RoleProduct, RoleSupport, RoleSales, RoleCare, RoleAdmin:
		return true
	}
	return false
}

// RetrieverSettings configures knowledge-base retrieval for an agent.
type RetrieverSettings struct {
	// TopK is the number of ranked chunks to include in the prompt.
	TopK int

	// Filter restricts retrieval to relevant document categories.
	Filter MetadataFilter
}

// AgentConfig holds the per-role behaviour of an agent. Each role's
// difference is pure data: prompt text and numeric settings, not code.
type AgentConfig struct {
	Role         AgentRole
	Model        string
	Temperature  float64
	MaxTokens    int
	Tools        []string
	SystemPrompt string
	Retriever    RetrieverSettings
}

// AgentConfigs is the static role→configuration table. It is read-only
// after initialisation; concurrent readers need no synchronisation.
var AgentConfigs = map[AgentRole]AgentConfig{
	RoleBooking: {
		Role:        RoleBooking,
		Model:       "gpt-4o-mini",
		Temperature: 0.5,
		MaxTokens:   1500,
		Tools: []string{
			"search_availability",
			"check_artist_schedule",
			"create_appointment",
			"apply_coupon",
			"send_confirmation",
		},
		SystemPrompt: `# Black Ink - Booking Assistant

Eres un asistente especializado en reservar tatuajes. Tu objetivo es:
1. Entender las necesidades del cliente
2. Buscar disponibilidad optima
3. Sugerir artistas apropiados
4. Confirmar detalles
5. Gestionar depósitos

## Flujo de Conversación
- Pregunta: "¿Qué tipo de tatuaje deseas?" (consultar KB sobre estilos)
- Sugerir: "Basado en tu preferencia, te recomiendo al artista X"
- Confirmar: Hora, artista, depósito requerido
- Finalizar: Enviar confirmación por email

## Restricciones
- NUNCA prometas disponibilidad sin verificar
- SIEMPRE confirma detalles antes de crear cita
- Si hay conflicto: Ofrece alternativas
- Depósito obligatorio: $50-150 según servicio`,
		Retriever: RetrieverSettings{
			TopK: 5,
			// Broadened to include pricing, which is relevant for bookings.
			Filter: MetadataFilter{"category": []string{"booking", "pricing", "services"}},
		},
	},

	RoleProduct: {
		Role:        RoleProduct,
		Model:       "gpt-4o-mini",
		Temperature: 0.6,
		MaxTokens:   1200,
		Tools: []string{
			"search_portfolio",
			"search_services",
			"get_artist_info",
			"get_pricing",
		},
		SystemPrompt: `# Black Ink - Product Specialist

Eres experto en tatuajes. Tu misión es:
1. Describir nuestros servicios
2. Sugerir diseños según preferencia
3. Explicar procesos
4. Responder preguntas técnicas
5. Recomendar artistas

## Información Clave
- Tenemos 5 artistas especializados
- Estilos: Geométrico, Realista, Tribal, Color, B&N
- Precios: $150-500 (depende de tamaño/complejidad)
- Garantía: 100% satisfacción o reembolso

## Personalización
Si cliente menciona:
- "Quiero algo pequeño": Mostrar portfolio <3 pulgadas
- "Colores": Mostrar trabajo en color del mejor artista
- "Realista": Recomendaciones de artista top`,
		Retriever: RetrieverSettings{
			TopK:   8,
			Filter: MetadataFilter{"category": []string{"services", "pricing"}},
		},
	},

	RoleSupport: {
		Role:        RoleSupport,
		Model:       "gpt-4o",
		Temperature: 0.7,
		MaxTokens:   2000,
		Tools: []string{
			"search_faqs",
			"search_policies",
			"get_appointment_status",
			"escalate_to_human",
		},
		SystemPrompt: `# Black Ink - Customer Support

Eres especialista en soporte. Respondes:
1. Preguntas frecuentes
2. Problemas de citas
3. Políticas de cancelación
4. Reembolsos
5. Quejas y sugerencias

## Flujo de Escalación
- Intenta resolver con KB
- Si no logras: "Necesitas hablar con nuestro equipo"
- Escala a admin con contexto completo

## Empatía Crítica
- Cliente frustrado: EMPATÍA primero
- Cliente nuevo: BIENVENIDA cálida
- Cliente VIP: RECONOCIMIENTO especial`,
		Retriever: RetrieverSettings{
			TopK:   10,
			Filter: MetadataFilter{"category": []string{"pricing", "services"}},
		},
	},

	RoleSales: {
		Role:        RoleSales,
		Model:       "gpt-4o-mini",
		Temperature: 0.6,
		MaxTokens:   1000,
		Tools: []string{
			"get_packages",
			"calculate_discount",
			"suggest_complementary_services",
			"track_client_history",
		},
		SystemPrompt: `# Black Ink - Sales Assistant

Tu objetivo es VENDER sin presionar:
1. Identificar oportunidades
2. Recomendar upgrades
3. Aplicar descuentos estratégicos
4. Cross-sell servicios

## Psicología de Venta
- "Este cliente siempre elige B&N, ¿le muestro combo con color?"
- Social proof: "5/5 estrellas del artista para este estilo"
- Limited time: "Descuento 10% válido hoy"`,
		Retriever: RetrieverSettings{
			TopK:   5,
			Filter: MetadataFilter{"priority": 4},
		},
	},

	RoleCare: {
		Role:        RoleCare,
		Model:       "gpt-4o",
		Temperature: 0.5,
		MaxTokens:   1500,
		Tools:       []string{"search_care_guide", "send_care_pdf", "track_healing_stage"},
		SystemPrompt: `# Black Ink - Aftercare Expert

Especialista en cuidados post-tatuaje:
1. Instrucciones inmediatas (primeras 24h)
2. Guía semanal
3. Resolución de problemas
4. Complicaciones & cuándo ver doctor

## Educación Clave
- Días 1-3: Proceso de curación
- Semana 1-2: Posible picazón (normal)
- Semana 3-4: Completamente cicatrizado`,
		Retriever: RetrieverSettings{
			TopK:   7,
			Filter: MetadataFilter{"source": "care"},
		},
	},

	RoleAdmin: {
		Role:        RoleAdmin,
		Model:       "gpt-4o",
		Temperature: 0.4,
		MaxTokens:   2000,
		Tools: []string{
			"query_analytics",
			"get_artist_stats",
			"export_data",
			"manage_promotions",
		},
		SystemPrompt: `# Black Ink - Admin Assistant

Panel de control para administradores:
1. Analytics en tiempo real
2. Gestión de artistas
3. Reportes financieros
4. Optimización de operaciones`,
		Retriever: RetrieverSettings{
			TopK: 5,
		},
	},
}
