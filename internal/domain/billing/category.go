package billing

// BillingCategory identifies a per-unit rate on a plan's rate card
type BillingCategory string

const (
	CategoryUser        BillingCategory = "user"
	CategoryWorkstation BillingCategory = "workstation"
	CategoryServer      BillingCategory = "server"
	CategoryVM          BillingCategory = "vm"
	CategorySwitch      BillingCategory = "switch"
	CategoryFirewall    BillingCategory = "firewall"
)

// String returns the string representation of the category
func (c BillingCategory) String() string {
	return string(c)
}

// IsValid returns true if the category is a known rate-card category
func (c BillingCategory) IsValid() bool {
	switch c {
	case CategoryUser, CategoryWorkstation, CategoryServer, CategoryVM, CategorySwitch, CategoryFirewall:
		return true
	}
	return false
}

// DisplayName returns a human-readable name for the category
func (c BillingCategory) DisplayName() string {
	switch c {
	case CategoryUser:
		return "User"
	case CategoryWorkstation:
		return "Workstation"
	case CategoryServer:
		return "Server"
	case CategoryVM:
		return "VM"
	case CategorySwitch:
		return "Switch"
	case CategoryFirewall:
		return "Firewall"
	default:
		return string(c)
	}
}

// AssetCategories returns the asset rate-card categories in rate-card order
func AssetCategories() []BillingCategory {
	return []BillingCategory{
		CategoryWorkstation,
		CategoryServer,
		CategoryVM,
		CategorySwitch,
		CategoryFirewall,
	}
}

// AssetClass is the billing classification applied to a single asset. It is
// either a rate-card category, a per-item custom rate, or an exclusion.
type AssetClass string

const (
	AssetClassWorkstation AssetClass = "workstation"
	AssetClassServer      AssetClass = "server"
	AssetClassVM          AssetClass = "vm"
	AssetClassSwitch      AssetClass = "switch"
	AssetClassFirewall    AssetClass = "firewall"
	AssetClassCustom      AssetClass = "custom"
	AssetClassNoCharge    AssetClass = "no_charge"
)

// IsValid returns true if the asset class is known
func (c AssetClass) IsValid() bool {
	switch c {
	case AssetClassWorkstation, AssetClassServer, AssetClassVM,
		AssetClassSwitch, AssetClassFirewall, AssetClassCustom, AssetClassNoCharge:
		return true
	}
	return false
}

// Category returns the rate-card category for the class and whether one
// applies (custom and no-charge classes carry no category rate).
func (c AssetClass) Category() (BillingCategory, bool) {
	switch c {
	case AssetClassWorkstation:
		return CategoryWorkstation, true
	case AssetClassServer:
		return CategoryServer, true
	case AssetClassVM:
		return CategoryVM, true
	case AssetClassSwitch:
		return CategorySwitch, true
	case AssetClassFirewall:
		return CategoryFirewall, true
	}
	return "", false
}

// ParseAssetClass maps an upstream asset type string to an asset class.
// Matching is case-insensitive on the canonical names used by the inventory
// source; unrecognized types return ok=false so callers can drop the item
// with a warning instead of billing it at a default rate.
func ParseAssetClass(s string) (AssetClass, bool) {
	switch normalizeTypeName(s) {
	case "workstation":
		return AssetClassWorkstation, true
	case "server":
		return AssetClassServer, true
	case "vm":
		return AssetClassVM, true
	case "switch":
		return AssetClassSwitch, true
	case "firewall":
		return AssetClassFirewall, true
	case "custom":
		return AssetClassCustom, true
	case "no_charge", "no charge", "nocharge":
		return AssetClassNoCharge, true
	}
	return "", false
}

// UserClass is the billing classification applied to a single user
type UserClass string

const (
	UserClassPaid   UserClass = "paid"
	UserClassFree   UserClass = "free"
	UserClassCustom UserClass = "custom"
)

// IsValid returns true if the user class is known
func (c UserClass) IsValid() bool {
	switch c {
	case UserClassPaid, UserClassFree, UserClassCustom:
		return true
	}
	return false
}

// ParseUserClass maps an upstream/user-entered class string to a user class
func ParseUserClass(s string) (UserClass, bool) {
	switch normalizeTypeName(s) {
	case "paid":
		return UserClassPaid, true
	case "free":
		return UserClassFree, true
	case "custom":
		return UserClassCustom, true
	}
	return "", false
}

func normalizeTypeName(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch >= 'A' && ch <= 'Z' {
			ch += 'a' - 'A'
		}
		out = append(out, ch)
	}
	return string(out)
}
