package command

import (
	"fmt"

	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
	"github.com/adilet-dev/campus-inventory/internal/user/domain"
)

// DeleteUserCommand represents the command to delete a user
type DeleteUserCommand struct {
	ID    uint
	Actor activity.Actor
}

// DeleteUserHandler handles user deletion command
type DeleteUserHandler struct {
	repo domain.UserRepository
}

// NewDeleteUserHandler creates a new delete user handler
func NewDeleteUserHandler(repo domain.UserRepository) *DeleteUserHandler {
	return &DeleteUserHandler{repo: repo}
}

// Handle executes the delete user command. Audit rows keep their
// user_id; attribution of historical entries survives the deletion.
func (h *DeleteUserHandler) Handle(cmd DeleteUserCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("invalid user id")
	}
	if cmd.Actor.UserID != nil && *cmd.Actor.UserID == cmd.ID {
		return fmt.Errorf("cannot delete own account")
	}

	user, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return err
	}

	entry := activity.NewLog(cmd.Actor, activity.ActionDeleteUser,
		fmt.Sprintf("Deleted user: %s", user.Username))

	return h.repo.Delete(cmd.ID, entry)
}
