package commands

// Command is a validated invocation of one command kind.
// The concrete types are AddItem, RemoveItem, Deposit, Withdraw, ListInventory and Help.
type Command interface {
	Kind() Kind
	sealed()
}

type AddItem struct{ Item string }

type RemoveItem struct{ Item string }

type Deposit struct {
	Item     string
	Quantity int64
}

type Withdraw struct {
	Item     string
	Quantity int64
}

type ListInventory struct{}

type Help struct{}

func (AddItem) Kind() Kind       { return KindAddItem }
func (RemoveItem) Kind() Kind    { return KindRemoveItem }
func (Deposit) Kind() Kind       { return KindDeposit }
func (Withdraw) Kind() Kind      { return KindWithdraw }
func (ListInventory) Kind() Kind { return KindListInventory }
func (Help) Kind() Kind          { return KindHelp }

func (AddItem) sealed()       {}
func (RemoveItem) sealed()    {}
func (Deposit) sealed()       {}
func (Withdraw) sealed()      {}
func (ListInventory) sealed() {}
func (Help) sealed()          {}
