package classifier

// defaultKeywords is the unified noise vocabulary for both adapters. It merges
// the DOM header blacklist and the screenshot list blacklist; entries are
// matched case-insensitively as whole lines or whole words.
var defaultKeywords = []string{
	// UI chrome
	"search", "menu", "settings", "notifications", "notification", "chats",
	"chat", "messages", "message", "inbox", "requests", "request", "primary",
	"general", "contacts", "contact", "profile", "status", "calls", "call",
	"video", "communities", "channels", "updates", "new", "back", "more",
	"options", "info", "details", "media", "links", "docs", "starred",
	"pesquisar", "buscar", "configurações", "configuracoes", "notificações",
	"notificacoes", "conversas", "mensagens", "mensagem", "solicitações",
	"solicitacoes", "principal", "geral", "contatos", "contato", "perfil",
	"chamadas", "ligação", "ligacao", "comunidades", "canais", "atualizações",
	"atualizacoes", "nova", "novo", "voltar", "mais", "opções", "opcoes",
	"dados", "mídia", "midia", "favoritas",

	// presence
	"online", "offline", "typing", "recording", "active", "away", "last",
	"seen", "now", "today", "yesterday", "ago", "digitando", "gravando",
	"ativo", "ativa", "agora", "visto", "hoje", "ontem", "última", "ultima",
	"vez", "last seen", "active now", "visto por último", "visto por ultimo",
	"ativo agora", "ativa agora", "gravando áudio", "gravando audio",

	// group membership
	"joined", "left", "admin", "added", "removed", "group", "members",
	"member", "participants", "entrou", "saiu", "adicionou", "removeu",
	"grupo", "membros", "participantes",

	// contact actions
	"mute", "unmute", "archive", "archived", "unarchive", "block", "unblock",
	"delete", "report", "pin", "unpin", "silenciar", "arquivar", "arquivadas",
	"bloquear", "desbloquear", "apagar", "excluir", "denunciar", "fixar",

	// transient UI verbs
	"loading", "sending", "sent", "delivered", "read", "seen by", "failed",
	"retry", "waiting", "connecting", "carregando", "enviando", "enviada",
	"entregue", "lida", "falhou", "tentar", "aguardando", "conectando",

	// scraping artifacts
	"refreshed", "default", "undefined", "null", "you", "você", "voce",
}

// defaultContaminationMarkers mark stale or placeholder UI state. A line
// containing one anywhere is never an identity.
var defaultContaminationMarkers = []string{"default", "refreshed"}
