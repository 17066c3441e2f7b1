package bingo

// DefaultTermPool is the built-in pool used when a session is created without
// a custom term list.
var DefaultTermPool = []string{
	"Pertencimento", "Orgulho", "Colaboração", "Metas", "Soul Up", "Comunicação", "Reconhecimento",
	"União", "Transparência", "Respeito", "Ajuda", "Sprint", "Solução", "Aprendizado", "Feedback",
	"Proatividade", "Conhecimento", "Superação", "Celebração", "Decisão", "Motivação", "Energia",
	"Alegria", "Confiança", "Comprometimento", "Cuidado", "Crescimento", "Segurança", "Equipe",
	"Abóbora", "Poção", "Fantasma", "Bruxa", "Travessura", "Vassoura", "Doces", "Caveira", "Múmia", "Feitiço",
	"Onboarding", "Integração", "OKR", "KPI", "Sprint OK", "Review", "Daily", "Planning", "Backlog", "Refino",
	"QA", "Deploy", "Bug", "Code", "Design", "UX", "UI", "Roadmap", "Sinergia", "Autonomia", "Foco",
	"Cliente", "NPS", "CSAT", "Receita", "Churn", "Upsell", "Cross-sell", "Lead", "Pipeline", "CAC",
	"LTV", "SEO", "Conteúdo", "CTA", "Cópia", "Brand", "Storytelling", "Mídia", "Orçamento", "Compliance",
	"Pontos ECOA", "Selo Verde", "Vale Energia", "ECOA Social", "Impacto", "ODS", "Escopo 3", "Carbono",
	"Token", "Ética", "Governança", "Diversidade", "Equidade", "Inclusão", "Sustentável",
	"Saúde", "Pausa", "Alongamento", "Hidratação", "Café", "Bem-estar", "Humor", "Conexão", "Música", "Feriado",
	"Gamificação", "Badge", "Recompensa", "App", "Check-in", "Pontos", "Desconto", "Sorteio", "Prêmio",
	"Inovação", "Resultado", "Entrega", "Evolução", "Excelência", "Resiliência", "Autoconfiança",
	"Liderança", "Visão", "Clareza", "Estratégia", "Transformação", "Sucesso", "Propósito", "Impacto Real",
}
