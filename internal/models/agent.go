package models

import "gorm.io/gorm"

// AgentCategory groups agents by their in-game role.
type AgentCategory string

const (
	CategoryController AgentCategory = "Controller"
	CategorySentinel   AgentCategory = "Sentinel"
	CategoryDuelist    AgentCategory = "Duelist"
	CategoryInitiator  AgentCategory = "Initiator"
)

// agentCategories is the fixed taxonomy of selectable agents. An agent name
// outside this table is rejected on creation.
var agentCategories = map[string]AgentCategory{
	"Brimstone": CategoryController,
	"Viper":     CategoryController,
	"Omen":      CategoryController,
	"Astra":     CategoryController,
	"Harbor":    CategoryController,
	"Clove":     CategoryController,

	"Sage":     CategorySentinel,
	"Cypher":   CategorySentinel,
	"Killjoy":  CategorySentinel,
	"Chamber":  CategorySentinel,
	"Deadlock": CategorySentinel,
	"Vyse":     CategorySentinel,

	"Phoenix": CategoryDuelist,
	"Reyna":   CategoryDuelist,
	"Jett":    CategoryDuelist,
	"Raze":    CategoryDuelist,
	"Yoru":    CategoryDuelist,
	"Neon":    CategoryDuelist,
	"Iso":     CategoryDuelist,

	"Sova":   CategoryInitiator,
	"Breach": CategoryInitiator,
	"Skye":   CategoryInitiator,
	"KAY/O":  CategoryInitiator,
	"Fade":   CategoryInitiator,
	"Gekko":  CategoryInitiator,
}

// CategoryForAgent returns the category an agent name belongs to.
func CategoryForAgent(name string) (AgentCategory, bool) {
	cat, ok := agentCategories[name]
	return cat, ok
}

// Agent represents a selectable in-game character.
type Agent struct {
	gorm.Model
	Name     string        `gorm:"size:50;unique;not null"`
	Category AgentCategory `gorm:"size:50;not null"`
}
