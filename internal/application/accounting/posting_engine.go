package accounting

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stockledger/backend/internal/domain/accounting"
	"github.com/stockledger/backend/internal/domain/inventory"
	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stockledger/backend/internal/infrastructure/sequence"
	"go.uber.org/zap"
)

// JournalPostingEngine turns an inventory movement into one balanced journal
// entry with two postings and updates both account balances. All five writes
// happen inside a single posting scope so partial journal state can never be
// observed.
type JournalPostingEngine struct {
	scope     PostingScope
	directory *AccountDirectory
	sequences sequence.Generator
	logger    *zap.Logger
}

// NewJournalPostingEngine creates a new posting engine
func NewJournalPostingEngine(
	scope PostingScope,
	directory *AccountDirectory,
	sequences sequence.Generator,
	logger *zap.Logger,
) *JournalPostingEngine {
	return &JournalPostingEngine{
		scope:     scope,
		directory: directory,
		sequences: sequences,
		logger:    logger,
	}
}

// Post creates the journal entry for a movement. Movement types that carry no
// accounting impact (reservations, releases, transfers) return (nil, nil).
// Unknown movement types fail explicitly so the orchestrator is told rather
// than the movement being silently dropped.
func (e *JournalPostingEngine) Post(
	ctx context.Context,
	movement *inventory.InventoryMovement,
	actor uuid.UUID,
) (*accounting.JournalEntry, error) {
	if !movement.Type.IsValid() {
		return nil, shared.NewFatalStageError("journal posting",
			shared.NewDomainError("UNSUPPORTED_MOVEMENT_TYPE",
				"Unknown movement type "+movement.Type.String()))
	}
	if !movement.Type.RequiresAccounting() {
		return nil, nil
	}

	rule, err := accounting.RuleFor(movement.Type, movement.Quantity)
	if err != nil {
		return nil, shared.NewFatalStageError("journal posting", err)
	}

	entryNumber := e.sequences.Next(sequence.PrefixJournal)

	var entry *accounting.JournalEntry
	err = e.scope.Execute(ctx, func(repos PostingRepositories) error {
		debitAccount, err := e.directory.GetOrCreate(ctx, repos.AccountRepo(), rule.Debit)
		if err != nil {
			return err
		}
		creditAccount, err := e.directory.GetOrCreate(ctx, repos.AccountRepo(), rule.Credit)
		if err != nil {
			return err
		}

		entry, err = accounting.NewJournalEntry(
			entryNumber,
			movement.MovementDate,
			movement.Type.String(),
			movement.DocumentNumber,
			fmt.Sprintf("%s of %s x %s", movement.Type, movement.Quantity.Abs(), movement.ProductName),
			movement.TotalCost,
			actor,
		)
		if err != nil {
			return err
		}
		entry.ProductID = &movement.ProductID
		entry.OrderID = movement.OrderID
		movementID := movement.ID
		entry.MovementID = &movementID

		entry.AddPosting(debitAccount, accounting.PostingSideDebit, movement.TotalCost, entry.Description)
		entry.AddPosting(creditAccount, accounting.PostingSideCredit, movement.TotalCost, entry.Description)

		// The rule table is fixed, but the balance invariant is still asserted
		// before anything is written.
		if err := entry.Validate(); err != nil {
			return err
		}

		if err := repos.JournalRepo().CreateEntry(ctx, entry); err != nil {
			return fmt.Errorf("failed to create journal entry: %w", err)
		}

		debitAccount.ApplyPosting(accounting.PostingSideDebit, movement.TotalCost)
		if err := repos.AccountRepo().Update(ctx, debitAccount); err != nil {
			return fmt.Errorf("failed to update account %s balance: %w", debitAccount.Code, err)
		}
		creditAccount.ApplyPosting(accounting.PostingSideCredit, movement.TotalCost)
		if err := repos.AccountRepo().Update(ctx, creditAccount); err != nil {
			return fmt.Errorf("failed to update account %s balance: %w", creditAccount.Code, err)
		}
		return nil
	})
	if err != nil {
		return nil, shared.NewRecoverableStageError("journal posting", err)
	}

	e.logger.Info("journal entry posted",
		zap.String("entry_number", entry.EntryNumber),
		zap.String("movement_number", movement.MovementNumber),
		zap.String("movement_type", movement.Type.String()),
		zap.String("debit_account", rule.Debit.Code),
		zap.String("credit_account", rule.Credit.Code),
		zap.String("amount", movement.TotalCost.StringFixed(2)),
	)
	return entry, nil
}
