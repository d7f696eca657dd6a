package appcontext

// Env tells config parsing which entrypoint is booting the fx graph. The
// cache warmer runs inside the server process, so it carries no Env of its
// own.
const (
	EnvServer Env = iota
	EnvCLI
)

type Env int

type Ctx struct {
	Env Env
}

func Declare(env Env) Ctx {
	return Ctx{
		Env: env,
	}
}
