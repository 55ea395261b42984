package shell

import "noticeboard/internal/logger"

// LoginAction is the protected action that raised the login prompt.
type LoginAction string

const (
	LoginToLike    LoginAction = "like"
	LoginToComment LoginAction = "comment"
	LoginToAccount LoginAction = "account"
)

func (a LoginAction) valid() bool {
	switch a {
	case LoginToLike, LoginToComment, LoginToAccount:
		return true
	}
	return false
}

// LoginPrompt asks a guest to log in before a protected action.
type LoginPrompt struct {
	Action LoginAction
}

// Message is the prompt body shown to the user.
func (p LoginPrompt) Message() string {
	switch p.Action {
	case LoginToLike:
		return "Log in to like listings."
	case LoginToComment:
		return "Log in to join the conversation."
	case LoginToAccount:
		return "Log in to manage your account."
	}
	return "Log in to continue."
}

// RequireLogin shows the prompt for action. The action itself is never
// performed here; the caller retries after logging in.
func (o *Orchestrator) RequireLogin(action LoginAction) {
	if !action.valid() {
		logger.Debug(o.ctx, "Ignoring login prompt for unknown action '%s'", action)
		return
	}
	o.prompt = &LoginPrompt{Action: action}
}

// DismissLoginPrompt is "not now".
func (o *Orchestrator) DismissLoginPrompt() {
	o.prompt = nil
}

// ProceedToLogin closes the prompt and returns to the login screen.
func (o *Orchestrator) ProceedToLogin() {
	o.prompt = nil
	o.SetAuthenticated(false)
}

// LoginPrompt returns the visible prompt, if any.
func (o *Orchestrator) LoginPrompt() (LoginPrompt, bool) {
	if o.prompt == nil {
		return LoginPrompt{}, false
	}
	return *o.prompt, true
}
