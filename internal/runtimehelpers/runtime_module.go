package runtimehelpers

// ModuleSource is the TypeScript source of the runtime-helper module.
// Compiled output imports from it by the fixed module specifier
// RuntimeModuleSpecifier rather than inlining helper bodies, so a
// single copy is shared across every file in a build (spec.md §4.2,
// §9 "single runtime-helper module per build").
const RuntimeModuleSpecifier = "lisc/runtime"

const ModuleSource = `// Generated runtime-helper module. Every export below corresponds to
// exactly one entry of the closed helper roster; do not add exports.

export function dynamicGet(target: any, key: PropertyKey, fallback?: any): any {
  if (target == null) return fallback;
  if (typeof target === "function") {
    const viaCall = target(key);
    if (viaCall !== undefined) return viaCall;
  }
  const v = target[key as any];
  return v === undefined ? fallback : v;
}

export function dynamicCall(target: any, method: PropertyKey, args: any[]): any {
  const fn = dynamicGet(target, method);
  if (typeof fn !== "function") {
    throw new TypeError(` + "`dynamic-call: ${String(method)} is not callable`" + `);
  }
  return fn.apply(target, args);
}

export function callFn(fn: any, thisArg: any, args: any[]): any {
  if (typeof fn !== "function") {
    throw new TypeError("call-fn: target is not callable");
  }
  return fn.apply(thisArg, args);
}

export function range(start: number, end?: number, step = 1): Iterable<number> {
  const [lo, hi] = end === undefined ? [0, start] : [start, end];
  return {
    [Symbol.iterator]() {
      let cur = lo;
      return {
        next(): IteratorResult<number> {
          if ((step > 0 && cur >= hi) || (step < 0 && cur <= hi)) {
            return { value: undefined, done: true };
          }
          const value = cur;
          cur += step;
          return { value, done: false };
        },
      };
    },
  };
}

export function toSequence(value: any): Iterable<any> {
  if (value == null) return [];
  if (typeof value === "number") return range(0, value);
  if (typeof value[Symbol.iterator] === "function") return value;
  return [value];
}

export function forEach(value: any, fn: (el: any, index: number) => void): void {
  let i = 0;
  for (const el of toSequence(value)) {
    fn(el, i++);
  }
}

export function hashMap(...pairs: any[]): Record<string, any> {
  const out: Record<string, any> = {};
  for (let i = 0; i + 1 < pairs.length; i += 2) {
    out[String(pairs[i])] = pairs[i + 1];
  }
  return out;
}

export function throwHelper(value: any): never {
  throw value instanceof Error ? value : new Error(String(value));
}

export function deepFreeze<T>(value: T): T {
  if (value !== null && (typeof value === "object" || typeof value === "function")) {
    Object.getOwnPropertyNames(value).forEach((name) => {
      deepFreeze((value as any)[name]);
    });
    Object.freeze(value);
  }
  return value;
}

const operatorTable: Record<string, (...args: any[]) => any> = {
  "+": (a, b) => a + b,
  "-": (a, b) => (b === undefined ? -a : a - b),
  "*": (a, b) => a * b,
  "/": (a, b) => a / b,
  "=": (a, b) => a === b,
  "<": (a, b) => a < b,
  ">": (a, b) => a > b,
  "<=": (a, b) => a <= b,
  ">=": (a, b) => a >= b,
  "not": (a) => !a,
  "%": (a, b) => a % b,
  "**": (a, b) => a ** b,
  "==": (a, b) => a == b,
  "!=": (a, b) => a !== b,
  "!==": (a, b) => a !== b,
  "bit-and": (a, b) => a & b,
  "bit-or": (a, b) => a | b,
  "bit-xor": (a, b) => a ^ b,
  "bit-not": (a) => ~a,
  "shl": (a, b) => a << b,
  "shr": (a, b) => a >> b,
  "ushr": (a, b) => a >>> b,
  "??": (a, b) => a ?? b,
  "and": (a, b) => a && b,
  "or": (a, b) => a || b,
};

export function getOp(symbol: string): (...args: any[]) => any {
  const fn = operatorTable[symbol];
  if (!fn) throw new Error(` + "`get-op: unknown operator ${symbol}`" + `);
  return fn;
}

export function lazySeq<T>(thunk: () => Iterable<T>): Iterable<T> {
  let cached: Iterable<T> | undefined;
  return {
    [Symbol.iterator]() {
      if (!cached) cached = thunk();
      return cached[Symbol.iterator]();
    },
  };
}

export function delay<T>(thunk: () => T): () => T {
  let evaluated = false;
  let value: T;
  return () => {
    if (!evaluated) {
      value = thunk();
      evaluated = true;
    }
    return value;
  };
}

let gensymCounter = 0;

export function gensym(prefix = "g"): string {
  gensymCounter += 1;
  return ` + "`${prefix}~${gensymCounter}`" + `;
}

export function trampoline(thunk: () => any): any {
  let result = thunk();
  while (typeof result === "function" && (result as any).__isTrampolineThunk) {
    result = result();
  }
  return result;
}
`
