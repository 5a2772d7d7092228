package protocol

// Side represents the book side of a price level update.
type Side int8

const (
	SideBuy  Side = 1
	SideSell Side = 2
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	}
	return "unknown"
}

// SystemEventCode identifies a point in the trading day.
type SystemEventCode uint8

const (
	SystemEventStartOfMessages     SystemEventCode = 'O'
	SystemEventStartOfSystemHours  SystemEventCode = 'S'
	SystemEventStartOfRegularHours SystemEventCode = 'R'
	SystemEventEndOfRegularHours   SystemEventCode = 'M'
	SystemEventEndOfSystemHours    SystemEventCode = 'E'
	SystemEventEndOfMessages       SystemEventCode = 'C'
)

func (c SystemEventCode) String() string {
	switch c {
	case SystemEventStartOfMessages:
		return "start_of_messages"
	case SystemEventStartOfSystemHours:
		return "start_of_system_hours"
	case SystemEventStartOfRegularHours:
		return "start_of_regular_hours"
	case SystemEventEndOfRegularHours:
		return "end_of_regular_hours"
	case SystemEventEndOfSystemHours:
		return "end_of_system_hours"
	case SystemEventEndOfMessages:
		return "end_of_messages"
	}
	return "unknown"
}

// TradingStatusCode is the trading state of a security.
type TradingStatusCode uint8

const (
	TradingStatusHalted      TradingStatusCode = 'H' // Trading halted across all US equity markets
	TradingStatusOrderAccept TradingStatusCode = 'O' // Trading halt released into an Order Acceptance Period (IEX-listed only)
	TradingStatusPaused      TradingStatusCode = 'P' // Trading paused and Order Acceptance Period on IEX (IEX-listed only)
	TradingStatusTrading     TradingStatusCode = 'T' // Trading on IEX
)

func (c TradingStatusCode) String() string {
	switch c {
	case TradingStatusHalted:
		return "halted"
	case TradingStatusOrderAccept:
		return "order_acceptance_period"
	case TradingStatusPaused:
		return "paused"
	case TradingStatusTrading:
		return "trading"
	}
	return "unknown"
}

// Trading status reason codes (4 bytes ASCII, space padded on the wire).
const (
	ReasonHaltNewsPending       = "T1"
	ReasonIPONotYetTrading      = "IPO1"
	ReasonIPODeferred           = "IPOD"
	ReasonMarketCircuitBreaker3 = "MCB3"
	ReasonNotAvailable          = "NA"
	ReasonHaltNewsDisseminated  = "T2"
	ReasonIPOOrderAcceptance    = "IPO2"
	ReasonIPOPreLaunch          = "IPO3"
	ReasonMarketCircuitBreaker1 = "MCB1"
	ReasonMarketCircuitBreaker2 = "MCB2"
)

// OperationalHaltCode is an IEX-specific operational halt state.
type OperationalHaltCode uint8

const (
	OperationalHalted    OperationalHaltCode = 'O'
	OperationalNotHalted OperationalHaltCode = 'N'
)

func (c OperationalHaltCode) String() string {
	switch c {
	case OperationalHalted:
		return "halted"
	case OperationalNotHalted:
		return "not_halted"
	}
	return "unknown"
}

// ShortSaleDetail explains a Reg SHO short-sale price test status change.
type ShortSaleDetail uint8

const (
	ShortSaleDetailNone         ShortSaleDetail = ' '
	ShortSaleDetailActivated    ShortSaleDetail = 'A' // Intraday price drop
	ShortSaleDetailContinued    ShortSaleDetail = 'C' // Continued from prior day
	ShortSaleDetailDeactivated  ShortSaleDetail = 'D'
	ShortSaleDetailNotAvailable ShortSaleDetail = 'N'
)

func (d ShortSaleDetail) String() string {
	switch d {
	case ShortSaleDetailNone:
		return "none"
	case ShortSaleDetailActivated:
		return "activated"
	case ShortSaleDetailContinued:
		return "continued"
	case ShortSaleDetailDeactivated:
		return "deactivated"
	case ShortSaleDetailNotAvailable:
		return "not_available"
	}
	return "unknown"
}

// SecurityEventCode marks the opening or closing process of a security.
type SecurityEventCode uint8

const (
	SecurityEventOpeningProcessComplete SecurityEventCode = 'O'
	SecurityEventClosingProcessComplete SecurityEventCode = 'C'
)

func (c SecurityEventCode) String() string {
	switch c {
	case SecurityEventOpeningProcessComplete:
		return "opening_process_complete"
	case SecurityEventClosingProcessComplete:
		return "closing_process_complete"
	}
	return "unknown"
}

// OfficialPriceType distinguishes opening from closing official prices.
type OfficialPriceType uint8

const (
	OfficialPriceOpening OfficialPriceType = 'Q'
	OfficialPriceClosing OfficialPriceType = 'M'
)

func (t OfficialPriceType) String() string {
	switch t {
	case OfficialPriceOpening:
		return "opening"
	case OfficialPriceClosing:
		return "closing"
	}
	return "unknown"
}

// AuctionType identifies the kind of IEX auction.
type AuctionType uint8

const (
	AuctionOpening    AuctionType = 'O'
	AuctionClosing    AuctionType = 'C'
	AuctionIPO        AuctionType = 'I'
	AuctionHalt       AuctionType = 'H'
	AuctionVolatility AuctionType = 'V'
)

func (t AuctionType) String() string {
	switch t {
	case AuctionOpening:
		return "open"
	case AuctionClosing:
		return "close"
	case AuctionIPO:
		return "ipo"
	case AuctionHalt:
		return "halt"
	case AuctionVolatility:
		return "volatility"
	}
	return "unknown"
}

// ImbalanceSide is the side of an auction imbalance.
type ImbalanceSide uint8

const (
	ImbalanceBuy  ImbalanceSide = 'B'
	ImbalanceSell ImbalanceSide = 'S'
	ImbalanceNone ImbalanceSide = 'N'
)

func (s ImbalanceSide) String() string {
	switch s {
	case ImbalanceBuy:
		return "buy"
	case ImbalanceSell:
		return "sell"
	case ImbalanceNone:
		return "none"
	}
	return "unknown"
}

// LULDTier is the Limit Up-Limit Down tier of a security.
type LULDTier uint8

const (
	LULDTierNotApplicable LULDTier = 0
	LULDTier1             LULDTier = 1 // NMS Tier 1 security
	LULDTier2             LULDTier = 2 // NMS Tier 2 security
)

// Flag bits.
const (
	// Quote update
	QuoteFlagSymbolHalted  uint8 = 0x80
	QuoteFlagPrePostMarket uint8 = 0x40

	// Trade report and trade break sale condition
	TradeFlagIntermarketSweep   uint8 = 0x80
	TradeFlagExtendedHours      uint8 = 0x40
	TradeFlagOddLot             uint8 = 0x20
	TradeFlagTradeThroughExempt uint8 = 0x10
	TradeFlagSinglePriceCross   uint8 = 0x08

	// Security directory
	DirectoryFlagTestSecurity uint8 = 0x80
	DirectoryFlagWhenIssued   uint8 = 0x40
	DirectoryFlagETP          uint8 = 0x20

	// Price level update event
	PriceLevelFlagEventComplete uint8 = 0x01
)
