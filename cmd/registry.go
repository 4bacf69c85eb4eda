package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"products.GO/core/registry"
)

// Register queues an extension command for the root command. Call it from an
// init() func; it panics after Apply and on a name the CLI already has.
func Register(c *cobra.Command) {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd: registry locked, register commands during init")
	}
	name := c.Name()
	if existing, _, err := rootCmd.Find([]string{name}); err == nil && existing != rootCmd {
		panic("cmd: command " + name + " is built in")
	}
	list := Registered()
	for _, r := range list {
		if r.Name() == name {
			panic("cmd: duplicate command " + name)
		}
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, append(list, c))
}

// Registered returns the extension commands sorted by name.
func Registered() []*cobra.Command {
	var list []*cobra.Command
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		list = append(list, v.([]*cobra.Command)...)
	}
	sort.Slice(list, func(i, k int) bool { return list[i].Name() < list[k].Name() })
	return list
}

// Apply attaches the extension commands to root and locks the registry.
// Calling it again is a no-op for commands already attached.
func Apply() {
	for _, c := range Registered() {
		if !c.HasParent() {
			rootCmd.AddCommand(c)
		}
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}
