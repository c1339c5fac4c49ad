package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"roto-bridge/binding"
	"roto-bridge/midi"
	"roto-bridge/sysex"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "detect":
		detectRoto()
	case "leds":
		testLEDs()
	case "echo":
		echo()
	case "poll":
		pollDevices()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list    - List all MIDI ports")
	fmt.Println("  detect  - Find a Roto-Control")
	fmt.Println("  leds    - Walk the button LEDs")
	fmt.Println("  echo    - Print everything the controller sends")
	fmt.Println("  poll    - Watch controllers come and go")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ins, outs, ok := midi.Ports()
	if !ok {
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}
	for i, p := range ins {
		fmt.Printf("  %d: %s\n", i, p)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, p := range outs {
		fmt.Printf("  %d: %s\n", i, p)
	}
}

func open() midi.Controller {
	c, err := midi.OpenFirst(midi.DefaultMatch, sysex.SendDelay)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	return c
}

func detectRoto() {
	fmt.Println("Looking for Roto-Control...")
	c := open()
	defer c.Close()
	fmt.Printf("Found: %s (%s)\n", c.ID(), c.Type())
}

func testLEDs() {
	fmt.Println("Testing LED control...")
	c := open()
	defer c.Close()

	l := binding.DefaultLayout
	fmt.Println("Lighting buttons 1-8...")
	for i := 0; i < binding.Controls; i++ {
		if err := c.SendCC(l.Channel, l.ButtonCC(i), 127); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	fmt.Println("Press Enter to clear...")
	fmt.Scanln()

	for i := 0; i < binding.Controls; i++ {
		c.SendCC(l.Channel, l.ButtonCC(i), 0)
	}
	fmt.Println("Done!")
}

func echo() {
	c := open()
	defer c.Close()

	fmt.Printf("Listening on %s. Ctrl+C to exit.\n", c.ID())
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-c.Messages():
			if !ok {
				return
			}
			if m, ours := sysex.Parse(raw); ours {
				fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05.000"), m)
				continue
			}
			fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05.000"), midi.Describe(raw))
		}
	}
}

func pollDevices() {
	fmt.Println("Polling for device changes...")
	fmt.Println("Connect/disconnect the Roto-Control to test. Ctrl+C to exit.")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	dm := midi.NewDeviceManager(midi.DefaultMatch, sysex.SendDelay)
	go dm.Run(ctx)
	for ev := range dm.Events() {
		fmt.Printf("[%s] %s %s\n", time.Now().Format("15:04:05"), ev.ID, ev.Type)
	}
}
