package ports

// Logger é o log estruturado usado por services, handlers e repositórios.
// args são pares chave/valor ("user_id", id, ...).
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}
